package brackets

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dosada05/bracket-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func players(n int) []models.Participant {
	out := make([]models.Participant, n)
	for i := range out {
		out[i] = models.Participant{ID: models.ParticipantID(fmt.Sprintf("p%d", i+1)), Rank: i + 1}
	}
	return out
}

func TestNewGenerator(t *testing.T) {
	g, err := NewGenerator(GeneratorSingleElimination)
	require.NoError(t, err)
	assert.Equal(t, GeneratorSingleElimination, g.GetName())

	g, err = NewGenerator(GeneratorRoundRobin)
	require.NoError(t, err)
	assert.Equal(t, GeneratorRoundRobin, g.GetName())

	_, err = NewGenerator("Swiss")
	assert.ErrorIs(t, err, ErrUnknownGenerator)
}

func TestSeedOrder(t *testing.T) {
	assert.Equal(t, []int{1, 2}, seedOrder(2))
	assert.Equal(t, []int{1, 4, 2, 3}, seedOrder(4))
	assert.Equal(t, []int{1, 8, 4, 5, 2, 7, 3, 6}, seedOrder(8))
}

func TestSingleElimination_FullField(t *testing.T) {
	matches, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
		TournamentID: 7,
		Participants: players(8),
	})
	require.NoError(t, err)
	require.Len(t, matches, 7)

	rounds := OrganizeMatchesByRound(matches)
	assert.Equal(t, []int{0, 1, 2}, rounds.Numbers())
	assert.Len(t, rounds[0], 4)
	assert.Len(t, rounds[1], 2)
	assert.Len(t, rounds[2], 1)

	first := rounds[0][0]
	assert.Equal(t, "R0M1", first.ID)
	assert.Equal(t, models.ParticipantID("p1"), first.P1ID)
	assert.Equal(t, models.ParticipantID("p8"), first.P2ID)
	assert.Equal(t, 7, first.TournamentID)
	assert.Equal(t, models.BracketWinners, first.BracketType)

	final := rounds[2][0]
	require.NotNil(t, final.Slot)
	assert.Equal(t, models.BracketSlot{LowPlace: 1, HighPlace: 2}, *final.Slot)
	assert.Equal(t, models.EmptyParticipant, final.P1ID)
}

func TestSingleElimination_ByesAdvanceTopSeeds(t *testing.T) {
	matches, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
		Participants: players(5),
	})
	require.NoError(t, err)

	rounds := OrganizeMatchesByRound(matches)
	require.Len(t, rounds[0], 4)

	byes := 0
	for _, mm := range rounds[0] {
		if mm.P2ID == models.ByeParticipant {
			byes++
			assert.Equal(t, mm.P1ID, mm.WinnerID)
		}
	}
	assert.Equal(t, 3, byes)

	// p1 advanced by bye and waits for the winner of p4 vs p5.
	assert.Equal(t, models.ParticipantID("p1"), rounds[1][0].P1ID)
	assert.Equal(t, models.EmptyParticipant, rounds[1][0].P2ID)
	assert.Equal(t, models.ParticipantID("p2"), rounds[1][1].P1ID)
	assert.Equal(t, models.ParticipantID("p3"), rounds[1][1].P2ID)
}

func TestSingleElimination_ThirdPlace(t *testing.T) {
	matches, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
		Participants: players(4),
		ThirdPlace:   true,
	})
	require.NoError(t, err)
	require.Len(t, matches, 4)

	third := matches[3]
	require.NotNil(t, third.Slot)
	assert.True(t, third.Slot.IsPlacementMatch())
	assert.Equal(t, 1, third.Round)

	layout := DefaultGeometry.Layout(OrganizeMatchesByRound(matches), models.BracketWinners)
	assert.Len(t, layout.Placement, 1)
	assert.Len(t, layout.Rounds[1].Boxes, 1)

	matches, err = NewSingleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
		Participants: players(3),
		ThirdPlace:   true,
	})
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestGenerators_StampBracketType(t *testing.T) {
	for _, g := range []BracketGenerator{NewSingleEliminationGenerator(), NewRoundRobinGenerator()} {
		matches, err := g.GenerateBracket(context.Background(), GenerateBracketParams{
			BracketType:  models.BracketLosers,
			Participants: players(4),
			ThirdPlace:   true,
		})
		require.NoError(t, err, g.GetName())
		for _, mm := range matches {
			assert.Equal(t, models.BracketLosers, mm.BracketType, "%s %s", g.GetName(), mm.ID)
		}
	}
}

func TestSingleElimination_NotEnoughParticipants(t *testing.T) {
	_, err := NewSingleEliminationGenerator().GenerateBracket(context.Background(), GenerateBracketParams{Participants: players(1)})
	assert.ErrorIs(t, err, ErrNotEnoughParticipants)
}

func TestRoundRobin_EveryPairMeetsOnce(t *testing.T) {
	for _, n := range []int{2, 3, 4, 5, 6} {
		t.Run(fmt.Sprintf("%d players", n), func(t *testing.T) {
			matches, err := NewRoundRobinGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
				GroupID:      "g1",
				Participants: players(n),
			})
			require.NoError(t, err)
			require.Len(t, matches, n*(n-1)/2)

			pairs := make(map[string]int)
			perRound := make(map[int]map[models.ParticipantID]bool)
			for _, mm := range matches {
				a, b := mm.P1ID, mm.P2ID
				if a > b {
					a, b = b, a
				}
				pairs[string(a)+"-"+string(b)]++
				assert.Equal(t, "g1", mm.GroupID)

				if perRound[mm.Round] == nil {
					perRound[mm.Round] = make(map[models.ParticipantID]bool)
				}
				assert.False(t, perRound[mm.Round][mm.P1ID], "player plays twice in round %d", mm.Round)
				assert.False(t, perRound[mm.Round][mm.P2ID], "player plays twice in round %d", mm.Round)
				perRound[mm.Round][mm.P1ID] = true
				perRound[mm.Round][mm.P2ID] = true
			}
			for pair, count := range pairs {
				assert.Equal(t, 1, count, pair)
			}

			wantRounds := n - 1
			if n%2 == 1 {
				wantRounds = n
			}
			assert.Len(t, OrganizeMatchesByRound(matches).Numbers(), wantRounds)
		})
	}
}

func TestRoundRobin_DoubleLegSwapsSides(t *testing.T) {
	matches, err := NewRoundRobinGenerator().GenerateBracket(context.Background(), GenerateBracketParams{
		Participants: players(4),
		Legs:         2,
	})
	require.NoError(t, err)
	require.Len(t, matches, 12)

	home := make(map[string]int)
	for _, mm := range matches {
		home[string(mm.P1ID)+">"+string(mm.P2ID)]++
	}
	for key, count := range home {
		assert.Equal(t, 1, count, key)
	}
	assert.Equal(t, 5, matches[len(matches)-1].Round)
}

func TestGenerators_RespectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRoundRobinGenerator().GenerateBracket(ctx, GenerateBracketParams{Participants: players(4)})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewSingleEliminationGenerator().GenerateBracket(ctx, GenerateBracketParams{Participants: players(4)})
	assert.ErrorIs(t, err, context.Canceled)
}
