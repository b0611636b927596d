// Package scoring derives set counts, winners and group points from raw match scores.
package scoring

import "github.com/Dosada05/bracket-engine/models"

const (
	// SetPointTarget is the minimum number of points needed to take a set.
	SetPointTarget = 11
	// SetWinMargin is the lead required to close a set out of deuce.
	SetWinMargin = 2
)

// SetCount is the number of sets each side won in a match.
type SetCount struct {
	P1Sets int `json:"p1_sets"`
	P2Sets int `json:"p2_sets"`
}

// ExtractMatchSets counts won sets from the per-set points when present and falls back
// to the pre-aggregated totals otherwise.
func ExtractMatchSets(match models.Match) SetCount {
	if len(match.Score.Sets) > 0 {
		var count SetCount
		for _, set := range match.Score.Sets {
			switch {
			case wonSet(set.P1, set.P2):
				count.P1Sets++
			case wonSet(set.P2, set.P1):
				count.P2Sets++
			}
		}
		return count
	}

	var count SetCount
	if match.Score.P1Sets != nil {
		count.P1Sets = *match.Score.P1Sets
	}
	if match.Score.P2Sets != nil {
		count.P2Sets = *match.Score.P2Sets
	}
	return count
}

func wonSet(points, opponent int) bool {
	return points >= SetPointTarget && points-opponent >= SetWinMargin
}

// MatchWinner returns the recorded winner, or derives it from the set count for played
// matches. Forfeits without a recorded winner stay undecided.
func MatchWinner(match models.Match) models.ParticipantID {
	if match.IsDecided() {
		return match.WinnerID
	}
	if match.Forfeit || !match.P1ID.IsReal() || !match.P2ID.IsReal() {
		return models.NoParticipant
	}
	sets := ExtractMatchSets(match)
	switch {
	case sets.P1Sets > sets.P2Sets:
		return match.P1ID
	case sets.P2Sets > sets.P1Sets:
		return match.P2ID
	}
	return models.NoParticipant
}

// PointTotals sums the raw points scored by each side over all recorded sets.
func PointTotals(match models.Match) (p1, p2 int) {
	for _, set := range match.Score.Sets {
		p1 += set.P1
		p2 += set.P2
	}
	return p1, p2
}

// SetsFor returns the sets won and lost by id in the match, from its point of view.
func SetsFor(match models.Match, id models.ParticipantID) (won, lost int) {
	sets := ExtractMatchSets(match)
	switch id {
	case match.P1ID:
		return sets.P1Sets, sets.P2Sets
	case match.P2ID:
		return sets.P2Sets, sets.P1Sets
	}
	return 0, 0
}

// PointsFor returns the points scored and conceded by id in the match.
func PointsFor(match models.Match, id models.ParticipantID) (scored, conceded int) {
	p1, p2 := PointTotals(match)
	switch id {
	case match.P1ID:
		return p1, p2
	case match.P2ID:
		return p2, p1
	}
	return 0, 0
}
