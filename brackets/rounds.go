package brackets

import (
	"sort"

	"github.com/Dosada05/bracket-engine/models"
)

// Rounds maps a round number to the matches of that round, ordered by their position
// within the round.
type Rounds map[int][]models.Match

// OrganizeMatchesByRound buckets matches by round and orders every bucket by Order.
// Matches sharing an Order keep their input order.
func OrganizeMatchesByRound(matches []models.Match) Rounds {
	rounds := make(Rounds)
	for _, m := range matches {
		rounds[m.Round] = append(rounds[m.Round], m)
	}
	for _, bucket := range rounds {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Order < bucket[j].Order
		})
	}
	return rounds
}

// Numbers returns the round numbers in ascending order.
func (r Rounds) Numbers() []int {
	nums := make([]int, 0, len(r))
	for n := range r {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// MatchCount returns the number of matches over all rounds.
func (r Rounds) MatchCount() int {
	total := 0
	for _, bucket := range r {
		total += len(bucket)
	}
	return total
}
