package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Dosada05/bracket-engine/brackets"
	"github.com/Dosada05/bracket-engine/models"
	"github.com/Dosada05/bracket-engine/scoring"
	"github.com/Dosada05/bracket-engine/standings"
	"github.com/spf13/cobra"
)

type layoutOptions struct {
	bracketType string
	boxHeight   float64
	initialGap  float64
	table       bool
}

func newLayoutCmd() *cobra.Command {
	opts := layoutOptions{}
	cmd := &cobra.Command{
		Use:   "layout [matches.json]",
		Short: "Lay out a bracket from a JSON list of matches",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()
			return runLayout(in, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.bracketType, "type", string(models.BracketWinners), "Bracket type: winners or losers")
	cmd.Flags().Float64Var(&opts.boxHeight, "box-height", brackets.DefaultGeometry.BoxHeight, "Height of a match box")
	cmd.Flags().Float64Var(&opts.initialGap, "initial-gap", brackets.DefaultGeometry.InitialGap, "Gap between boxes of the first round")
	cmd.Flags().BoolVar(&opts.table, "table", false, "Print a text table instead of JSON")
	return cmd
}

func runLayout(in io.Reader, out io.Writer, opts layoutOptions) error {
	bracketType, err := models.ParseBracketType(opts.bracketType)
	if err != nil {
		return err
	}
	if opts.boxHeight <= 0 {
		return fmt.Errorf("--box-height must be positive, got %g", opts.boxHeight)
	}
	if opts.initialGap < 0 {
		return fmt.Errorf("--initial-gap must not be negative, got %g", opts.initialGap)
	}

	var matches []models.Match
	if err := json.NewDecoder(in).Decode(&matches); err != nil {
		return fmt.Errorf("failed to decode matches: %w", err)
	}

	geometry := brackets.Geometry{BoxHeight: opts.boxHeight, InitialGap: opts.initialGap}
	layout := geometry.Layout(brackets.OrganizeMatchesByRound(matches), bracketType)
	if err := layout.Validate(); err != nil {
		return err
	}

	if !opts.table {
		return printJSON(out, layout)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ROUND\tDEPTH\tMATCH\tP1\tP2\tTOP\tSLOT")
	for _, round := range layout.Rounds {
		for _, box := range round.Boxes {
			fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%g\t%s\n",
				round.Round, round.Depth, box.MatchID, box.P1ID, box.P2ID, box.Top, slotLabel(box.Slot))
		}
	}
	for _, box := range layout.Placement {
		fmt.Fprintf(tw, "-\t-\t%s\t%s\t%s\t%g\t%s\n",
			box.MatchID, box.P1ID, box.P2ID, box.Top, slotLabel(box.Slot))
	}
	fmt.Fprintf(tw, "height\t\t\t\t\t%g\t\n", layout.Height)
	return tw.Flush()
}

type standingsOptions struct {
	extended      bool
	pointsWin     int
	pointsLoss    int
	pointsForfeit int
	table         bool
}

type standingsInput struct {
	Group        models.Group         `json:"group"`
	Participants []models.Participant `json:"participants"`
	Matches      []models.Match       `json:"matches"`
}

func newStandingsCmd() *cobra.Command {
	opts := standingsOptions{}
	cmd := &cobra.Command{
		Use:   "standings [group.json]",
		Short: "Resolve a round-robin group from {participants, matches}",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, closeIn, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeIn()
			return runStandings(in, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().BoolVar(&opts.extended, "extended", false, "Order ties of three or more by set and point ratios")
	cmd.Flags().IntVar(&opts.pointsWin, "points-win", scoring.DefaultPointsRule.Win, "Points for a win")
	cmd.Flags().IntVar(&opts.pointsLoss, "points-loss", scoring.DefaultPointsRule.Loss, "Points for a played loss")
	cmd.Flags().IntVar(&opts.pointsForfeit, "points-forfeit", scoring.DefaultPointsRule.ForfeitLoss, "Points for a loss by forfeit")
	cmd.Flags().BoolVar(&opts.table, "table", false, "Print a text table instead of JSON")
	return cmd
}

func runStandings(in io.Reader, out io.Writer, opts standingsOptions) error {
	var input standingsInput
	if err := json.NewDecoder(in).Decode(&input); err != nil {
		return fmt.Errorf("failed to decode group: %w", err)
	}
	participants := standings.GroupMembers(input.Group.ID, input.Participants)
	if len(participants) == 0 {
		return fmt.Errorf("at least one participant is required")
	}
	for _, m := range input.Matches {
		if err := m.Validate(); err != nil {
			return err
		}
	}

	rule := scoring.PointsRule{Win: opts.pointsWin, Loss: opts.pointsLoss, ForfeitLoss: opts.pointsForfeit}
	resolved := standings.Resolver{Extended: opts.extended}.ResolveDetailed(
		standings.BuildEntries(participants, input.Matches, rule),
	)
	result := models.GroupStandings{
		Group:     input.Group,
		Standings: standings.Table(resolved.Ranking),
		TieBreaks: standings.TieBreakRecords(resolved.TieBreaks),
	}

	if !opts.table {
		return printJSON(out, result)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tPLAYER\tPTS\tP\tW\tL\tFF\tSETS")
	for _, row := range result.Standings {
		name := row.Name
		if name == "" {
			name = string(row.ParticipantID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d:%d\n",
			row.Rank, name, row.Points, row.Played, row.Wins, row.Losses, row.ForfeitLosses, row.SetsFor, row.SetsAgainst)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, tb := range result.TieBreaks {
		ids := make([]string, 0, len(tb.Participants))
		for _, id := range tb.Participants {
			ids = append(ids, string(id))
		}
		fmt.Fprintf(out, "tie %s settled by %s\n", strings.Join(ids, ", "), tb.Rule)
	}
	return nil
}

// openInput returns the file named by args, or stdin when there is none or it is "-".
func openInput(cmd *cobra.Command, args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func slotLabel(slot *models.BracketSlot) string {
	if slot == nil {
		return ""
	}
	return slot.String()
}
