package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/bracket-engine/metrics"
	"github.com/Dosada05/bracket-engine/models"
	"github.com/Dosada05/bracket-engine/repositories"
	"github.com/Dosada05/bracket-engine/scoring"
	"github.com/Dosada05/bracket-engine/standings"
	"golang.org/x/sync/errgroup"
)

// ResolveInput is an ad-hoc group: nothing is loaded from or written to storage.
type ResolveInput struct {
	Group        models.Group         `json:"group"`
	Participants []models.Participant `json:"participants"`
	Matches      []models.Match       `json:"matches"`
	// Extended and Points override the service defaults when set.
	Extended *bool               `json:"extended,omitempty"`
	Points   *scoring.PointsRule `json:"points,omitempty"`
}

type StandingsService interface {
	GetGroupStandings(ctx context.Context, groupID string) (*models.GroupStandings, error)
	GetTournamentStandings(ctx context.Context, tournamentID int) ([]models.GroupStandings, error)
	Resolve(ctx context.Context, input ResolveInput) (*models.GroupStandings, error)
}

type StandingsOptions struct {
	Resolver standings.Resolver
	Points   scoring.PointsRule
}

// DefaultStandingsOptions uses the basic tie-break rules and 2/1/0 points.
var DefaultStandingsOptions = StandingsOptions{Points: scoring.DefaultPointsRule}

type standingsService struct {
	tournamentRepo  repositories.TournamentRepository
	groupRepo       repositories.GroupRepository
	participantRepo repositories.ParticipantRepository
	matchRepo       repositories.MatchRepository
	opts            StandingsOptions
	metrics         metrics.Metrics
	logger          *slog.Logger
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	groupRepo repositories.GroupRepository,
	participantRepo repositories.ParticipantRepository,
	matchRepo repositories.MatchRepository,
	opts StandingsOptions,
	m metrics.Metrics,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		tournamentRepo:  tournamentRepo,
		groupRepo:       groupRepo,
		participantRepo: participantRepo,
		matchRepo:       matchRepo,
		opts:            opts,
		metrics:         m,
		logger:          logger,
	}
}

func (s *standingsService) GetGroupStandings(ctx context.Context, groupID string) (*models.GroupStandings, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	participants, matches, err := s.loadGroups(ctx, []string{groupID})
	if err != nil {
		return nil, err
	}

	result := s.compute(*group, participants, matches, s.opts)
	return &result, nil
}

func (s *standingsService) GetTournamentStandings(ctx context.Context, tournamentID int) ([]models.GroupStandings, error) {
	var groups []models.Group

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if _, err := s.tournamentRepo.GetByID(gCtx, tournamentID); err != nil {
			return translateRepoError(err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		groups, err = s.groupRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list groups of tournament %d: %w", tournamentID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(groups) == 0 {
		return []models.GroupStandings{}, nil
	}

	groupIDs := make([]string, len(groups))
	for i, group := range groups {
		groupIDs[i] = group.ID
	}
	participants, matches, err := s.loadGroups(ctx, groupIDs)
	if err != nil {
		return nil, err
	}

	participantsByGroup := make(map[string][]models.Participant, len(groups))
	for _, p := range participants {
		participantsByGroup[p.GroupID] = append(participantsByGroup[p.GroupID], p)
	}
	matchesByGroup := make(map[string][]models.Match, len(groups))
	for _, m := range matches {
		matchesByGroup[m.GroupID] = append(matchesByGroup[m.GroupID], m)
	}

	result := make([]models.GroupStandings, 0, len(groups))
	for _, group := range groups {
		result = append(result, s.compute(group, participantsByGroup[group.ID], matchesByGroup[group.ID], s.opts))
	}

	s.logger.DebugContext(ctx, "tournament standings computed",
		slog.Int("tournament_id", tournamentID),
		slog.Int("groups", len(groups)),
		slog.Int("participants", len(participants)),
		slog.Int("matches", len(matches)),
	)
	return result, nil
}

func (s *standingsService) Resolve(ctx context.Context, input ResolveInput) (*models.GroupStandings, error) {
	participants := standings.GroupMembers(input.Group.ID, input.Participants)
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: at least one participant is required", ErrValidationFailed)
	}
	if err := validateParticipants(participants); err != nil {
		return nil, err
	}
	for _, m := range input.Matches {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := s.opts
	if input.Extended != nil {
		opts.Resolver.Extended = *input.Extended
	}
	if input.Points != nil {
		opts.Points = *input.Points
	}

	result := s.compute(input.Group, participants, input.Matches, opts)
	return &result, nil
}

// loadGroups fetches participants and matches of the groups concurrently.
func (s *standingsService) loadGroups(ctx context.Context, groupIDs []string) ([]models.Participant, []models.Match, error) {
	var (
		participants []models.Participant
		matches      []models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		participants, err = s.participantRepo.ListByGroups(gCtx, groupIDs)
		if err != nil {
			return fmt.Errorf("failed to load group participants: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByGroups(gCtx, groupIDs)
		if err != nil {
			return fmt.Errorf("failed to load group matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return participants, matches, nil
}

func (s *standingsService) compute(group models.Group, participants []models.Participant, matches []models.Match, opts StandingsOptions) models.GroupStandings {
	entries := standings.BuildEntries(participants, matches, opts.Points)
	resolved := opts.Resolver.ResolveDetailed(entries)

	s.metrics.IncStandingsResolved()
	for _, tb := range resolved.TieBreaks {
		s.metrics.IncTieBreaks(string(tb.Rule))
	}

	return models.GroupStandings{
		Group:     group,
		Standings: standings.Table(resolved.Ranking),
		TieBreaks: standings.TieBreakRecords(resolved.TieBreaks),
	}
}
