package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/bracket-engine/models"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return GeneratorRoundRobin
}

// GenerateBracket schedules a round robin with the circle method: the first participant
// stays in place while the others rotate, so every pair meets exactly once per leg. An
// odd field gets a bye slot and the pairing against it is dropped.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]models.Match, error) {
	n := len(params.Participants)
	if n < 2 {
		return nil, fmt.Errorf("round robin: %w (found %d)", ErrNotEnoughParticipants, n)
	}

	legs := params.Legs
	if legs != 2 {
		legs = 1
	}

	ring := make([]models.ParticipantID, 0, n+1)
	for _, p := range params.Participants {
		ring = append(ring, p.ID)
	}
	if len(ring)%2 == 1 {
		ring = append(ring, models.ByeParticipant)
	}
	size := len(ring)
	roundsPerLeg := size - 1

	matches := make([]models.Match, 0, legs*n*(n-1)/2)
	for leg := 0; leg < legs; leg++ {
		rotation := append([]models.ParticipantID(nil), ring...)
		for r := 0; r < roundsPerLeg; r++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			round := leg*roundsPerLeg + r
			order := 0
			for i := 0; i < size/2; i++ {
				p1, p2 := rotation[i], rotation[size-1-i]
				if !p1.IsReal() || !p2.IsReal() {
					continue
				}
				// Alternate sides for the fixed participant, and swap again in the return leg.
				if (i == 0 && r%2 == 1) != (leg == 1) {
					p1, p2 = p2, p1
				}
				order++
				matches = append(matches, models.Match{
					ID:           fmt.Sprintf("RR%dM%d", round, order),
					TournamentID: params.TournamentID,
					GroupID:      params.GroupID,
					BracketType:  params.BracketType,
					Round:        round,
					Order:        order,
					P1ID:         p1,
					P2ID:         p2,
				})
			}
			rotate(rotation)
		}
	}

	return matches, nil
}

// rotate keeps the first element fixed and moves the rest one position clockwise.
func rotate(ring []models.ParticipantID) {
	if len(ring) < 3 {
		return
	}
	last := ring[len(ring)-1]
	copy(ring[2:], ring[1:len(ring)-1])
	ring[1] = last
}
