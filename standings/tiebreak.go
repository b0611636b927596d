package standings

import (
	"sort"

	"github.com/Dosada05/bracket-engine/models"
	"github.com/Dosada05/bracket-engine/scoring"
)

func memberSet(group []Entry) map[models.ParticipantID]struct{} {
	members := make(map[models.ParticipantID]struct{}, len(group))
	for _, e := range group {
		members[e.id()] = struct{}{}
	}
	return members
}

// isInternal reports whether both sides of m belong to the tied group.
func isInternal(m models.Match, members map[models.ParticipantID]struct{}) bool {
	_, p1 := members[m.P1ID]
	_, p2 := members[m.P2ID]
	return p1 && p2 && m.P1ID != m.P2ID
}

// internalMatches collects the matches played among members, deduplicated by match ID
// since both participants usually carry the same match.
func internalMatches(group []Entry) []models.Match {
	members := memberSet(group)
	seen := make(map[string]struct{})
	var matches []models.Match
	for _, e := range group {
		for _, m := range e.Matches {
			if !isInternal(m, members) {
				continue
			}
			if m.ID != "" {
				if _, dup := seen[m.ID]; dup {
					continue
				}
				seen[m.ID] = struct{}{}
			}
			matches = append(matches, m)
		}
	}
	return matches
}

// byForfeits orders the group by forfeit losses against other members, fewest first.
// It only applies when the counts differ.
func byForfeits(group []Entry) bool {
	counts := make(map[models.ParticipantID]int, len(group))
	for _, m := range internalMatches(group) {
		if loser := m.ForfeitLoser(); loser.IsReal() {
			counts[loser]++
		}
	}

	first := counts[group[0].id()]
	differ := false
	for _, e := range group[1:] {
		if counts[e.id()] != first {
			differ = true
			break
		}
	}
	if !differ {
		return false
	}

	sort.SliceStable(group, func(i, j int) bool {
		return counts[group[i].id()] < counts[group[j].id()]
	})
	return true
}

// byHeadToHead settles a two-way tie by match wins in the direct encounters.
func byHeadToHead(group []Entry) bool {
	a, b := group[0].id(), group[1].id()
	winsA, winsB := 0, 0
	for _, m := range internalMatches(group) {
		switch scoring.MatchWinner(m) {
		case a:
			winsA++
		case b:
			winsB++
		}
	}

	switch {
	case winsA > winsB:
		return true
	case winsB > winsA:
		group[0], group[1] = group[1], group[0]
		return true
	}
	return false
}

type ratio struct {
	won, lost int
}

// cmp returns 1 if r is the better ratio, -1 if worse, 0 if equal. A ratio with wins and
// no losses beats any finite ratio; an empty ratio counts as zero.
func (r ratio) cmp(o ratio) int {
	rInf, oInf := r.lost == 0 && r.won > 0, o.lost == 0 && o.won > 0
	switch {
	case rInf && oInf:
		return compareInts(r.won, o.won)
	case rInf:
		return 1
	case oInf:
		return -1
	}
	return compareInts(r.won*max(o.lost, 1), o.won*max(r.lost, 1))
}

func compareInts(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

// bySetsAndPoints orders the group by set ratio and then point ratio over the matches
// among its members. It applies when at least one pair is separated.
func bySetsAndPoints(group []Entry) bool {
	sets := make(map[models.ParticipantID]ratio, len(group))
	points := make(map[models.ParticipantID]ratio, len(group))
	for _, m := range internalMatches(group) {
		for _, id := range []models.ParticipantID{m.P1ID, m.P2ID} {
			won, lost := scoring.SetsFor(m, id)
			s := sets[id]
			sets[id] = ratio{won: s.won + won, lost: s.lost + lost}

			scored, conceded := scoring.PointsFor(m, id)
			p := points[id]
			points[id] = ratio{won: p.won + scored, lost: p.lost + conceded}
		}
	}

	compare := func(x, y models.ParticipantID) int {
		if c := sets[x].cmp(sets[y]); c != 0 {
			return c
		}
		return points[x].cmp(points[y])
	}

	sort.SliceStable(group, func(i, j int) bool {
		return compare(group[i].id(), group[j].id()) > 0
	})
	for i := 1; i < len(group); i++ {
		if compare(group[i-1].id(), group[i].id()) != 0 {
			return true
		}
	}
	return false
}
