package standings

import (
	"github.com/Dosada05/bracket-engine/models"
	"github.com/Dosada05/bracket-engine/scoring"
)

// BuildEntries attaches to every participant the matches it played against other
// participants of the same list and computes its points with rule. Matches against
// outsiders, byes and empty slots are ignored.
func BuildEntries(participants []models.Participant, matches []models.Match, rule scoring.PointsRule) []Entry {
	members := make(map[models.ParticipantID]struct{}, len(participants))
	for _, p := range participants {
		members[p.ID] = struct{}{}
	}

	byParticipant := make(map[models.ParticipantID][]models.Match, len(participants))
	for _, m := range matches {
		if !isInternal(m, members) {
			continue
		}
		byParticipant[m.P1ID] = append(byParticipant[m.P1ID], m)
		byParticipant[m.P2ID] = append(byParticipant[m.P2ID], m)
	}

	entries := make([]Entry, 0, len(participants))
	for _, p := range participants {
		own := byParticipant[p.ID]
		entries = append(entries, Entry{
			Participant: p,
			TotalPoints: rule.Total(p.ID, own),
			Matches:     own,
		})
	}
	return entries
}

// GroupMembers drops the placeholder rows, those without a group, from participants of
// groupID. An empty groupID keeps every row.
func GroupMembers(groupID string, participants []models.Participant) []models.Participant {
	if groupID == "" {
		return participants
	}
	members := make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		if p.IsGrouped() {
			members = append(members, p)
		}
	}
	return members
}

// Table converts a resolved ranking into standing rows with 1-based ranks.
func Table(ranking []Entry) []models.Standing {
	rows := make([]models.Standing, 0, len(ranking))
	for i, e := range ranking {
		row := models.Standing{
			Rank:          i + 1,
			ParticipantID: e.Participant.ID,
			Name:          e.Participant.Name,
			GroupID:       e.Participant.GroupID,
			Points:        e.TotalPoints,
		}
		for _, m := range e.Matches {
			winner := scoring.MatchWinner(m)
			if !winner.IsReal() {
				continue
			}
			row.Played++
			if winner == e.Participant.ID {
				row.Wins++
			} else {
				row.Losses++
				if m.Forfeit {
					row.ForfeitLosses++
				}
			}
			won, lost := scoring.SetsFor(m, e.Participant.ID)
			row.SetsFor += won
			row.SetsAgainst += lost
		}
		rows = append(rows, row)
	}
	return rows
}

// TieBreakRecords converts tie-breaks into their model form.
func TieBreakRecords(tieBreaks []TieBreak) []models.TieBreak {
	if len(tieBreaks) == 0 {
		return nil
	}
	out := make([]models.TieBreak, len(tieBreaks))
	for i, tb := range tieBreaks {
		out[i] = models.TieBreak{Participants: tb.Participants, Rule: string(tb.Rule)}
	}
	return out
}
