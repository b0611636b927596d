package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/bracket-engine/models"
)

var (
	ErrNotEnoughParticipants = errors.New("not enough participants (minimum 2)")
	ErrUnknownGenerator      = errors.New("unknown bracket generator")
)

type GenerateBracketParams struct {
	TournamentID int
	GroupID      string
	// BracketType is stamped on every generated match. Single elimination defaults to winners.
	BracketType models.BracketType
	// Participants are expected in seeding order.
	Participants []models.Participant
	// ThirdPlace adds a 3-4 placement match to single elimination brackets.
	ThirdPlace bool
	// Legs is the number of times every pair meets in a round robin (1 or 2).
	Legs int
}

// BracketGenerator produces the match skeleton of a bracket. Nothing is persisted.
type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]models.Match, error)

	GetName() string
}

const (
	GeneratorSingleElimination = "SingleElimination"
	GeneratorRoundRobin        = "RoundRobin"
)

// NewGenerator returns the generator registered under name.
func NewGenerator(name string) (BracketGenerator, error) {
	switch name {
	case GeneratorSingleElimination:
		return NewSingleEliminationGenerator(), nil
	case GeneratorRoundRobin:
		return NewRoundRobinGenerator(), nil
	}
	return nil, ErrUnknownGenerator
}
