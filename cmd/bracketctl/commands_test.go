package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Dosada05/bracket-engine/brackets"
	"github.com/Dosada05/bracket-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bracketJSON = `[
  {"id": "F", "round": 1, "order": 1, "p1_id": "a", "p2_id": "c", "slot": "1-2"},
  {"id": "S2", "round": 0, "order": 2, "p1_id": "c", "p2_id": "d"},
  {"id": "S1", "round": 0, "order": 1, "p1_id": "a", "p2_id": "b"},
  {"id": "B", "round": 1, "order": 2, "p1_id": "b", "p2_id": "d", "slot": {"low_place": 3, "high_place": 4}}
]`

const groupJSON = `{
  "group": {"id": "A", "name": "Group A"},
  "participants": [
    {"id": "b", "name": "Bea", "group_id": "A"},
    {"id": "a", "name": "Ann", "group_id": "A"},
    {"id": "c", "name": "Cy", "group_id": "A"}
  ],
  "matches": [
    {"id": "1", "p1_id": "a", "p2_id": "b", "winner_id": "a", "score": {"sets": [{"p1": 11, "p2": 7}, {"p1": 11, "p2": 9}, {"p1": 11, "p2": 4}]}},
    {"id": "2", "p1_id": "a", "p2_id": "c", "winner_id": "c", "score": {"sets": [{"p1": 5, "p2": 11}, {"p1": 7, "p2": 11}, {"p1": 9, "p2": 11}]}},
    {"id": "3", "p1_id": "b", "p2_id": "c", "winner_id": "b", "forfeit": true, "forfeit_kind": "walkover"}
  ]
}`

func defaultLayoutOptions() layoutOptions {
	return layoutOptions{
		bracketType: "winners",
		boxHeight:   brackets.DefaultGeometry.BoxHeight,
		initialGap:  brackets.DefaultGeometry.InitialGap,
	}
}

func TestRunLayout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runLayout(strings.NewReader(bracketJSON), &out, defaultLayoutOptions()))

	var layout brackets.BracketLayout
	require.NoError(t, json.Unmarshal(out.Bytes(), &layout))

	require.Len(t, layout.Rounds, 2)
	assert.Equal(t, models.BracketWinners, layout.BracketType)

	first := layout.Rounds[0]
	require.Len(t, first.Boxes, 2)
	assert.Equal(t, "S1", first.Boxes[0].MatchID)
	assert.Equal(t, 0.0, first.Boxes[0].Top)
	assert.Equal(t, 80.0, first.Boxes[1].Top)

	final := layout.Rounds[1]
	require.Len(t, final.Boxes, 1)
	assert.Equal(t, "F", final.Boxes[0].MatchID)
	assert.Equal(t, 40.0, final.Boxes[0].Top)

	require.Len(t, layout.Placement, 1)
	assert.Equal(t, "B", layout.Placement[0].MatchID)
	assert.Equal(t, 160.0, layout.Placement[0].Top)
	assert.Equal(t, 220.0, layout.Height)
}

func TestRunLayoutCustomGeometry(t *testing.T) {
	opts := defaultLayoutOptions()
	opts.boxHeight, opts.initialGap = 40, 10

	var out bytes.Buffer
	require.NoError(t, runLayout(strings.NewReader(bracketJSON), &out, opts))

	var layout brackets.BracketLayout
	require.NoError(t, json.Unmarshal(out.Bytes(), &layout))
	assert.Equal(t, 50.0, layout.Rounds[0].Boxes[1].Top)
	assert.Equal(t, 25.0, layout.Rounds[1].Boxes[0].Top)
}

func TestRunLayoutTable(t *testing.T) {
	opts := defaultLayoutOptions()
	opts.table = true

	var out bytes.Buffer
	require.NoError(t, runLayout(strings.NewReader(bracketJSON), &out, opts))

	text := out.String()
	assert.Contains(t, text, "ROUND")
	assert.Contains(t, text, "1-2")
	assert.Contains(t, text, "3-4")
	assert.Contains(t, text, "height")
}

func TestRunLayoutInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		modify func(*layoutOptions)
	}{
		{"bad bracket type", bracketJSON, func(o *layoutOptions) { o.bracketType = "consolation" }},
		{"zero box height", bracketJSON, func(o *layoutOptions) { o.boxHeight = 0 }},
		{"negative gap", bracketJSON, func(o *layoutOptions) { o.initialGap = -1 }},
		{"malformed json", `[{"id": `, func(*layoutOptions) {}},
		{"bad slot label", `[{"id": "F", "slot": "final"}]`, func(*layoutOptions) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultLayoutOptions()
			tt.modify(&opts)
			assert.Error(t, runLayout(strings.NewReader(tt.input), &bytes.Buffer{}, opts))
		})
	}
}

func defaultStandingsOptions() standingsOptions {
	return standingsOptions{pointsWin: 2, pointsLoss: 1, pointsForfeit: 0}
}

func TestRunStandings(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runStandings(strings.NewReader(groupJSON), &out, defaultStandingsOptions()))

	var result models.GroupStandings
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))

	assert.Equal(t, "A", result.Group.ID)
	require.Len(t, result.Standings, 3)

	// Every player won once; c lost by walkover so has one point fewer.
	assert.Equal(t, models.ParticipantID("a"), result.Standings[0].ParticipantID)
	assert.Equal(t, 3, result.Standings[0].Points)
	assert.Equal(t, models.ParticipantID("b"), result.Standings[1].ParticipantID)
	assert.Equal(t, 3, result.Standings[1].Points)
	assert.Equal(t, models.ParticipantID("c"), result.Standings[2].ParticipantID)
	assert.Equal(t, 2, result.Standings[2].Points)

	require.Len(t, result.TieBreaks, 1)
	assert.Equal(t, "head_to_head", result.TieBreaks[0].Rule)
}

func TestRunStandingsCustomPoints(t *testing.T) {
	opts := defaultStandingsOptions()
	opts.pointsForfeit = 1

	var out bytes.Buffer
	require.NoError(t, runStandings(strings.NewReader(groupJSON), &out, opts))

	var result models.GroupStandings
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	for _, row := range result.Standings {
		assert.Equal(t, 3, row.Points, row.ParticipantID)
	}
}

func TestRunStandingsTable(t *testing.T) {
	opts := defaultStandingsOptions()
	opts.table = true

	var out bytes.Buffer
	require.NoError(t, runStandings(strings.NewReader(groupJSON), &out, opts))

	text := out.String()
	assert.Contains(t, text, "PLAYER")
	assert.Contains(t, text, "Ann")
	assert.Contains(t, text, "tie b, a settled by head_to_head")
}

func TestRunStandingsRequiresParticipants(t *testing.T) {
	err := runStandings(strings.NewReader(`{"participants": [], "matches": []}`), &bytes.Buffer{}, defaultStandingsOptions())
	assert.Error(t, err)

	onlyPlaceholder := `{"group": {"id": "A"}, "participants": [{"id": "slot"}], "matches": []}`
	err = runStandings(strings.NewReader(onlyPlaceholder), &bytes.Buffer{}, defaultStandingsOptions())
	assert.Error(t, err)
}

func TestRunStandingsSkipsPlaceholderRow(t *testing.T) {
	input := strings.Replace(groupJSON, `"participants": [`, `"participants": [
    {"id": "group-a", "name": "Group A"},`, 1)

	var out bytes.Buffer
	require.NoError(t, runStandings(strings.NewReader(input), &out, defaultStandingsOptions()))

	var result models.GroupStandings
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Len(t, result.Standings, 3)
	for _, row := range result.Standings {
		assert.NotEqual(t, models.ParticipantID("group-a"), row.ParticipantID)
	}
}

func TestRunStandingsRejectsUnknownForfeitKind(t *testing.T) {
	input := strings.Replace(groupJSON, `"forfeit_kind": "walkover"`, `"forfeit_kind": "no-show"`, 1)
	err := runStandings(strings.NewReader(input), &bytes.Buffer{}, defaultStandingsOptions())
	assert.ErrorIs(t, err, models.ErrInvalidForfeitKind)
}

func TestRunLayoutRejectsOverflow(t *testing.T) {
	matches := make([]string, 1100)
	for r := range matches {
		matches[r] = fmt.Sprintf(`{"id": "m%d", "round": %d, "order": 1}`, r, r)
	}
	err := runLayout(strings.NewReader("["+strings.Join(matches, ",")+"]"), &bytes.Buffer{}, defaultLayoutOptions())
	assert.ErrorIs(t, err, brackets.ErrLayoutOverflow)
}

func TestStandingsCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "group.json")
	require.NoError(t, os.WriteFile(path, []byte(groupJSON), 0o600))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"standings", "--table", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Bea")
}

func TestLayoutCommandReadsStdin(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(bracketJSON))
	cmd.SetArgs([]string{"layout", "--box-height", "40", "--initial-gap", "10"})
	require.NoError(t, cmd.Execute())

	var layout brackets.BracketLayout
	require.NoError(t, json.Unmarshal(out.Bytes(), &layout))
	assert.Equal(t, 40.0, layout.Geometry.BoxHeight)
}
