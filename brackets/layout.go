package brackets

import (
	"errors"
	"fmt"
	"math"

	"github.com/Dosada05/bracket-engine/models"
)

// ErrLayoutOverflow is returned for brackets too deep to be drawn with finite coordinates.
var ErrLayoutOverflow = errors.New("bracket layout overflows")

// MatchBox places a single match inside the bracket drawing.
type MatchBox struct {
	MatchID string               `json:"match_id"`
	Order   int                  `json:"order"`
	P1ID    models.ParticipantID `json:"p1_id"`
	P2ID    models.ParticipantID `json:"p2_id"`
	Top     float64              `json:"top"`
	Slot    *models.BracketSlot  `json:"slot,omitempty"`
}

type RoundLayout struct {
	Round           int        `json:"round"`
	Depth           int        `json:"depth"`
	Gap             float64    `json:"gap"`
	ConnectorHeight float64    `json:"connector_height"`
	LineHeight      float64    `json:"line_height"`
	Boxes           []MatchBox `json:"boxes"`
}

type BracketLayout struct {
	BracketType models.BracketType `json:"bracket_type"`
	Geometry    Geometry           `json:"geometry"`
	Rounds      []RoundLayout      `json:"rounds"`
	// Placement holds matches deciding places below the final. They sit under the tree.
	Placement []MatchBox `json:"placement,omitempty"`
	Height    float64    `json:"height"`
}

// Layout positions every match of rounds. Rounds are laid out in ascending key order and
// the geometry depth of a round is its position in that order, so brackets numbering
// their first round 1 lay out the same as those starting at 0.
func (g Geometry) Layout(rounds Rounds, bracketType models.BracketType) BracketLayout {
	layout := BracketLayout{
		BracketType: bracketType,
		Geometry:    g,
		Rounds:      []RoundLayout{},
	}

	var placement []models.Match
	offset, prevGap := 0.0, 0.0
	for depth, round := range rounds.Numbers() {
		gap := g.RoundGap(depth, bracketType)
		if depth > 0 && doubles(depth, bracketType) {
			offset += (g.BoxHeight + prevGap) / 2
		}

		rl := RoundLayout{
			Round:           round,
			Depth:           depth,
			Gap:             gap,
			ConnectorHeight: g.ConnectorHeight(gap),
			LineHeight:      g.LineHeight(depth, bracketType),
			Boxes:           []MatchBox{},
		}
		for _, m := range rounds[round] {
			if m.Slot != nil && m.Slot.IsPlacementMatch() {
				placement = append(placement, m)
				continue
			}
			top := offset + float64(len(rl.Boxes))*(g.BoxHeight+gap)
			rl.Boxes = append(rl.Boxes, newMatchBox(m, top))
			layout.Height = max(layout.Height, top+g.BoxHeight)
		}
		layout.Rounds = append(layout.Rounds, rl)
		prevGap = gap
	}

	top := layout.Height
	for _, m := range placement {
		top += g.InitialGap
		layout.Placement = append(layout.Placement, newMatchBox(m, top))
		top += g.BoxHeight
	}
	layout.Height = top
	return layout
}

func newMatchBox(m models.Match, top float64) MatchBox {
	return MatchBox{
		MatchID: m.ID,
		Order:   m.Order,
		P1ID:    m.P1ID,
		P2ID:    m.P2ID,
		Top:     top,
		Slot:    m.Slot,
	}
}

// Validate reports ErrLayoutOverflow when any coordinate of l is not a finite number.
func (l BracketLayout) Validate() error {
	if !finite(l.Height) {
		return fmt.Errorf("%w: height %v", ErrLayoutOverflow, l.Height)
	}
	for _, rl := range l.Rounds {
		if !finite(rl.Gap) || !finite(rl.ConnectorHeight) || !finite(rl.LineHeight) {
			return fmt.Errorf("%w: round %d (depth %d)", ErrLayoutOverflow, rl.Round, rl.Depth)
		}
		for _, b := range rl.Boxes {
			if !finite(b.Top) {
				return fmt.Errorf("%w: match %s in round %d", ErrLayoutOverflow, b.MatchID, rl.Round)
			}
		}
	}
	for _, b := range l.Placement {
		if !finite(b.Top) {
			return fmt.Errorf("%w: placement match %s", ErrLayoutOverflow, b.MatchID)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
