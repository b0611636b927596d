package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/bracket-engine/brackets"
	"github.com/Dosada05/bracket-engine/metrics"
	"github.com/Dosada05/bracket-engine/models"
	"github.com/Dosada05/bracket-engine/repositories"
)

// maxPreviewParticipants bounds the field of a preview request.
const maxPreviewParticipants = 256

type PreviewInput struct {
	// Generator is brackets.GeneratorSingleElimination (default) or brackets.GeneratorRoundRobin.
	Generator    string               `json:"generator"`
	BracketType  models.BracketType   `json:"bracket_type"`
	Participants []models.Participant `json:"participants"`
	ThirdPlace   bool                 `json:"third_place"`
	Legs         int                  `json:"legs"`
}

type PreviewResult struct {
	Generator string                 `json:"generator"`
	Matches   []models.Match         `json:"matches"`
	Layout    brackets.BracketLayout `json:"layout"`
}

type BracketService interface {
	GetLayout(ctx context.Context, tournamentID int, bracketType models.BracketType) (*brackets.BracketLayout, error)
	Preview(ctx context.Context, input PreviewInput) (*PreviewResult, error)
}

type bracketService struct {
	tournamentRepo repositories.TournamentRepository
	matchRepo      repositories.MatchRepository
	geometry       brackets.Geometry
	metrics        metrics.Metrics
	logger         *slog.Logger
}

func NewBracketService(
	tournamentRepo repositories.TournamentRepository,
	matchRepo repositories.MatchRepository,
	geometry brackets.Geometry,
	m metrics.Metrics,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		tournamentRepo: tournamentRepo,
		matchRepo:      matchRepo,
		geometry:       geometry,
		metrics:        m,
		logger:         logger,
	}
}

func (s *bracketService) GetLayout(ctx context.Context, tournamentID int, bracketType models.BracketType) (*brackets.BracketLayout, error) {
	if _, err := models.ParseBracketType(string(bracketType)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, translateRepoError(err)
	}

	matches, err := s.matchRepo.ListBracket(ctx, tournamentID, bracketType)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s bracket of tournament %d: %w", bracketType, tournamentID, err)
	}

	rounds := brackets.OrganizeMatchesByRound(matches)
	layout := s.geometry.Layout(rounds, bracketType)
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	s.metrics.IncLayoutsComputed(string(bracketType))
	s.logger.DebugContext(ctx, "bracket layout computed",
		slog.Int("tournament_id", tournamentID),
		slog.String("bracket_type", string(bracketType)),
		slog.Int("rounds", len(layout.Rounds)),
		slog.Int("matches", rounds.MatchCount()),
	)
	return &layout, nil
}

func (s *bracketService) Preview(ctx context.Context, input PreviewInput) (*PreviewResult, error) {
	if input.Generator == "" {
		input.Generator = brackets.GeneratorSingleElimination
	}
	if input.BracketType == "" {
		input.BracketType = models.BracketWinners
	}
	bracketType, err := models.ParseBracketType(string(input.BracketType))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	if len(input.Participants) > maxPreviewParticipants {
		return nil, fmt.Errorf("%w: at most %d participants per preview (got %d)",
			ErrValidationFailed, maxPreviewParticipants, len(input.Participants))
	}
	if err := validateParticipants(input.Participants); err != nil {
		return nil, err
	}

	generator, err := brackets.NewGenerator(input.Generator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %q", ErrValidationFailed, err, input.Generator)
	}

	matches, err := generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		BracketType:  bracketType,
		Participants: input.Participants,
		ThirdPlace:   input.ThirdPlace,
		Legs:         input.Legs,
	})
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughParticipants) {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("failed to generate %s preview: %w", generator.GetName(), err)
	}

	layout := s.geometry.Layout(brackets.OrganizeMatchesByRound(matches), bracketType)
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}
	s.metrics.IncLayoutsComputed(string(bracketType))
	return &PreviewResult{
		Generator: generator.GetName(),
		Matches:   matches,
		Layout:    layout,
	}, nil
}

// validateParticipants requires real, unique participant IDs.
func validateParticipants(participants []models.Participant) error {
	seen := make(map[models.ParticipantID]struct{}, len(participants))
	for i, p := range participants {
		if !p.ID.IsReal() {
			return fmt.Errorf("%w: participant %d has no usable id (%q)", ErrValidationFailed, i, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: duplicate participant id %q", ErrValidationFailed, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
