package brackets

import (
	"fmt"
	"math"

	"github.com/Dosada05/bracket-engine/models"
)

// Geometry holds the box dimensions, in abstract length units, that the bracket layout
// is computed for.
type Geometry struct {
	BoxHeight  float64 `json:"box_height"`
	InitialGap float64 `json:"initial_gap"`
}

// DefaultGeometry matches the admin bracket view: 60px boxes, 20px apart in the first round.
var DefaultGeometry = Geometry{BoxHeight: 60, InitialGap: 20}

// doubles reports whether the spacing between boxes doubles when entering round.
// The losers bracket only halves its field every second round.
func doubles(round int, bracketType models.BracketType) bool {
	if bracketType == models.BracketLosers {
		return round%2 == 0
	}
	return true
}

func mustRound(round int) {
	if round < 0 {
		panic(fmt.Sprintf("brackets: negative round %d", round))
	}
}

// RoundGap returns the vertical gap between consecutive match boxes of round (0-based).
// It panics on a negative round.
func (g Geometry) RoundGap(round int, bracketType models.BracketType) float64 {
	mustRound(round)
	gap := g.InitialGap
	for r := 1; r <= round; r++ {
		if doubles(r, bracketType) {
			gap = 2*(g.BoxHeight+gap) - g.BoxHeight
		} else {
			gap = (g.BoxHeight + gap) - g.BoxHeight
		}
	}
	return gap
}

// ConnectorHeight is the height of the line joining two child matches to their parent.
func (g Geometry) ConnectorHeight(gap float64) float64 {
	return gap/2 + g.BoxHeight/2
}

// LineHeight is the full connector line length used by renderers that draw one
// continuous line per round.
func (g Geometry) LineHeight(round int, bracketType models.BracketType) float64 {
	mustRound(round)
	return math.Pow(2, float64(round))*(g.BoxHeight+g.InitialGap) - g.ConnectorHeight(g.RoundGap(round, bracketType))
}

// CalculateRoundGap computes the round gap with DefaultGeometry.
func CalculateRoundGap(round int, bracketType models.BracketType) float64 {
	return DefaultGeometry.RoundGap(round, bracketType)
}

// CalculateConnectorHeight computes the connector height with DefaultGeometry.
func CalculateConnectorHeight(gap float64) float64 {
	return DefaultGeometry.ConnectorHeight(gap)
}
