package brackets

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/Dosada05/bracket-engine/models"
)

type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return GeneratorSingleElimination
}

// GenerateBracket pads the field to the next power of two and places seeds in the usual
// bracket order, so the top seeds meet the byes and seeds 1 and 2 can only meet in the
// final. Byes are decided immediately and their winners carried into the next round.
func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]models.Match, error) {
	n := len(params.Participants)
	if n < 2 {
		return nil, fmt.Errorf("single elimination: %w (found %d)", ErrNotEnoughParticipants, n)
	}

	bracketType := params.BracketType
	if bracketType == "" {
		bracketType = models.BracketWinners
	}

	numRounds := bits.Len(uint(n - 1))
	size := 1 << numRounds

	slots := make([]models.ParticipantID, size)
	for i := range slots {
		slots[i] = models.ByeParticipant
	}
	for i, p := range params.Participants {
		slots[i] = p.ID
	}

	matches := make([]models.Match, 0, size)
	current := make([]models.ParticipantID, 0, size)
	for _, seed := range seedOrder(size) {
		current = append(current, slots[seed-1])
	}

	for round := 0; round < numRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next := make([]models.ParticipantID, 0, len(current)/2)
		for i := 0; i < len(current); i += 2 {
			order := i/2 + 1
			match := models.Match{
				ID:           fmt.Sprintf("R%dM%d", round, order),
				TournamentID: params.TournamentID,
				BracketType:  bracketType,
				Round:        round,
				Order:        order,
				P1ID:         current[i],
				P2ID:         current[i+1],
			}

			advancing := models.EmptyParticipant
			switch {
			case match.P1ID.IsReal() && match.P2ID == models.ByeParticipant:
				match.WinnerID = match.P1ID
				advancing = match.P1ID
			case match.P2ID.IsReal() && match.P1ID == models.ByeParticipant:
				match.WinnerID = match.P2ID
				advancing = match.P2ID
			}
			if round == numRounds-1 {
				match.Slot = &models.BracketSlot{LowPlace: 1, HighPlace: 2}
			}

			matches = append(matches, match)
			next = append(next, advancing)
		}
		current = next
	}

	if params.ThirdPlace && n >= 4 {
		last := numRounds - 1
		matches = append(matches, models.Match{
			ID:           fmt.Sprintf("R%dM%d", last, 2),
			TournamentID: params.TournamentID,
			BracketType:  bracketType,
			Round:        last,
			Order:        2,
			P1ID:         models.EmptyParticipant,
			P2ID:         models.EmptyParticipant,
			Slot:         &models.BracketSlot{LowPlace: 3, HighPlace: 4},
		})
	}

	return matches, nil
}

// seedOrder returns the 1-based seeds in bracket position order, e.g. 1 8 4 5 2 7 3 6.
func seedOrder(size int) []int {
	order := []int{1}
	for len(order) < size {
		total := 2*len(order) + 1
		next := make([]int, 0, 2*len(order))
		for _, seed := range order {
			next = append(next, seed, total-seed)
		}
		order = next
	}
	return order
}
