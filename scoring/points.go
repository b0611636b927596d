package scoring

import "github.com/Dosada05/bracket-engine/models"

// PointsRule awards group points per match outcome.
type PointsRule struct {
	Win         int `json:"win"`
	Loss        int `json:"loss"`
	ForfeitLoss int `json:"forfeit_loss"`
}

// DefaultPointsRule is the usual table-tennis group scoring: two points for a win, one for
// a played loss and nothing for a match lost by forfeit.
var DefaultPointsRule = PointsRule{Win: 2, Loss: 1, ForfeitLoss: 0}

// For returns the points id earns from a single match. Undecided matches earn nothing.
func (r PointsRule) For(match models.Match, id models.ParticipantID) int {
	if !match.HasParticipant(id) {
		return 0
	}
	winner := MatchWinner(match)
	switch {
	case !winner.IsReal():
		return 0
	case winner == id:
		return r.Win
	case match.Forfeit:
		return r.ForfeitLoss
	}
	return r.Loss
}

// Total sums the points id earns over matches.
func (r PointsRule) Total(id models.ParticipantID, matches []models.Match) int {
	total := 0
	for _, m := range matches {
		total += r.For(m, id)
	}
	return total
}
