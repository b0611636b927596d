// Package standings orders round-robin group participants and settles ties.
package standings

import (
	"slices"
	"sort"

	"github.com/Dosada05/bracket-engine/models"
)

// Rule names the tie-break that settled a tied group.
type Rule string

const (
	RuleForfeits      Rule = "forfeits"
	RuleHeadToHead    Rule = "head_to_head"
	RuleSetsAndPoints Rule = "sets_and_points"
	RuleUnresolved    Rule = "unresolved"
)

// Entry is a group participant together with its accumulated points and the matches it
// played against other group members.
type Entry struct {
	Participant models.Participant `json:"participant"`
	TotalPoints int                `json:"total_points"`
	Matches     []models.Match     `json:"matches"`
}

func (e Entry) id() models.ParticipantID {
	return e.Participant.ID
}

// TieBreak describes how one tied group was ordered.
type TieBreak struct {
	Participants []models.ParticipantID `json:"participants"`
	Rule         Rule                   `json:"rule"`
}

type Result struct {
	Ranking   []Entry    `json:"ranking"`
	TieBreaks []TieBreak `json:"tie_breaks,omitempty"`
}

// Resolver ranks group entries. The zero value applies the forfeit and head-to-head rules
// only; Extended additionally orders ties of three or more by set ratio and then point
// ratio among the tied members.
type Resolver struct {
	Extended bool
}

// Resolve ranks entries with the default resolver.
func Resolve(entries []Entry) []Entry {
	return Resolver{}.Resolve(entries)
}

func (r Resolver) Resolve(entries []Entry) []Entry {
	return r.ResolveDetailed(entries).Ranking
}

// ResolveDetailed returns a new ranking and the tie-breaks applied. The input slice and
// its entries are left untouched.
func (r Resolver) ResolveDetailed(entries []Entry) Result {
	ranking := slices.Clone(entries)
	if ranking == nil {
		ranking = []Entry{}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].TotalPoints > ranking[j].TotalPoints
	})

	var tieBreaks []TieBreak
	for _, group := range tiedGroups(ranking) {
		tied := ids(group)
		tieBreaks = append(tieBreaks, TieBreak{Participants: tied, Rule: r.breakTie(group)})
	}
	return Result{Ranking: ranking, TieBreaks: tieBreaks}
}

// breakTie reorders group in place and reports the rule that settled it.
func (r Resolver) breakTie(group []Entry) Rule {
	if byForfeits(group) {
		return RuleForfeits
	}
	if len(group) == 2 && byHeadToHead(group) {
		return RuleHeadToHead
	}
	if r.Extended && len(group) >= 3 && bySetsAndPoints(group) {
		return RuleSetsAndPoints
	}
	return RuleUnresolved
}

// tiedGroups returns the maximal runs of two or more entries on equal points. The
// returned slices alias ranking.
func tiedGroups(ranking []Entry) [][]Entry {
	var groups [][]Entry
	for start := 0; start < len(ranking); {
		end := start + 1
		for end < len(ranking) && ranking[end].TotalPoints == ranking[start].TotalPoints {
			end++
		}
		if end-start > 1 {
			groups = append(groups, ranking[start:end])
		}
		start = end
	}
	return groups
}

func ids(group []Entry) []models.ParticipantID {
	out := make([]models.ParticipantID, len(group))
	for i, e := range group {
		out[i] = e.id()
	}
	return out
}
