package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/bracket-engine/brackets"
	"github.com/Dosada05/bracket-engine/metrics"
	"github.com/Dosada05/bracket-engine/models"
	"github.com/Dosada05/bracket-engine/repositories"
	"github.com/Dosada05/bracket-engine/storage"
	"golang.org/x/sync/errgroup"
)

// Broadcaster pushes messages to WebSocket rooms. *brackets.Hub implements it.
type Broadcaster interface {
	BroadcastToRoom(roomID string, message any) int
}

// Snapshot is the document uploaded for a tournament: both bracket layouts and every
// group table, as seen at PublishedAt.
type Snapshot struct {
	TournamentID int                                           `json:"tournament_id"`
	Name         string                                        `json:"name"`
	Status       models.TournamentStatus                       `json:"status"`
	PublishedAt  time.Time                                     `json:"published_at"`
	Brackets     map[models.BracketType]brackets.BracketLayout `json:"brackets"`
	Groups       []models.GroupStandings                       `json:"groups"`
}

type SnapshotResult struct {
	TournamentID int       `json:"tournament_id"`
	Key          string    `json:"key"`
	LatestKey    string    `json:"latest_key"`
	Location     string    `json:"location"`
	PublishedAt  time.Time `json:"published_at"`
}

type SnapshotService interface {
	Publish(ctx context.Context, tournamentID int) (*SnapshotResult, error)
	// PublishActive publishes every active tournament and returns how many succeeded.
	PublishActive(ctx context.Context) (int, error)
}

type snapshotService struct {
	tournamentRepo repositories.TournamentRepository
	brackets       BracketService
	standings      StandingsService
	uploader       storage.FileUploader
	retention      int
	hub            Broadcaster
	metrics        metrics.Metrics
	logger         *slog.Logger
	now            func() time.Time
}

// NewSnapshotService returns a service whose Publish fails with ErrSnapshotsDisabled
// when uploader is nil. Only the newest retention snapshots of a tournament are kept;
// zero keeps all of them. hub may be nil.
func NewSnapshotService(
	tournamentRepo repositories.TournamentRepository,
	bracketService BracketService,
	standingsService StandingsService,
	uploader storage.FileUploader,
	retention int,
	hub Broadcaster,
	m metrics.Metrics,
	logger *slog.Logger,
) SnapshotService {
	return &snapshotService{
		tournamentRepo: tournamentRepo,
		brackets:       bracketService,
		standings:      standingsService,
		uploader:       uploader,
		retention:      retention,
		hub:            hub,
		metrics:        m,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *snapshotService) Publish(ctx context.Context, tournamentID int) (*SnapshotResult, error) {
	if s.uploader == nil {
		return nil, ErrSnapshotsDisabled
	}

	started := s.now()
	result, err := s.publish(ctx, tournamentID)
	if err != nil {
		if !errors.Is(err, ErrTournamentNotFound) {
			s.metrics.IncSnapshotsFailed()
		}
		return nil, err
	}
	s.metrics.IncSnapshotsPublished()
	s.metrics.ObserveSnapshotDuration(s.now().Sub(started).Seconds())
	return result, nil
}

func (s *snapshotService) publish(ctx context.Context, tournamentID int) (*SnapshotResult, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, translateRepoError(err)
	}

	snapshot := Snapshot{
		TournamentID: tournament.ID,
		Name:         tournament.Name,
		Status:       tournament.Status,
		PublishedAt:  s.now().UTC(),
		Brackets:     make(map[models.BracketType]brackets.BracketLayout, 2),
	}

	var winners, losers *brackets.BracketLayout
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		winners, err = s.brackets.GetLayout(gCtx, tournamentID, models.BracketWinners)
		return err
	})
	g.Go(func() error {
		var err error
		losers, err = s.brackets.GetLayout(gCtx, tournamentID, models.BracketLosers)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Groups, err = s.standings.GetTournamentStandings(gCtx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build snapshot of tournament %d: %w", tournamentID, err)
	}
	snapshot.Brackets[models.BracketWinners] = *winners
	snapshot.Brackets[models.BracketLosers] = *losers

	body, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot of tournament %d: %w", tournamentID, err)
	}

	key := storage.SnapshotKey(tournamentID)
	uploaded, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	latestKey := storage.LatestSnapshotKey(tournamentID)
	if _, err := s.uploader.Upload(ctx, latestKey, "application/json", bytes.NewReader(body)); err != nil {
		return nil, err
	}

	s.prune(ctx, tournamentID)

	result := &SnapshotResult{
		TournamentID: tournamentID,
		Key:          uploaded.Key,
		LatestKey:    latestKey,
		Location:     uploaded.Location,
		PublishedAt:  snapshot.PublishedAt,
	}

	if s.hub != nil {
		room := brackets.TournamentRoom(tournamentID)
		sent := s.hub.BroadcastToRoom(room, brackets.WebSocketMessage{
			Type:    brackets.MessageSnapshotPublished,
			Payload: result,
			RoomID:  room,
		})
		s.logger.DebugContext(ctx, "snapshot broadcast", slog.String("room", room), slog.Int("clients", sent))
	}

	s.logger.InfoContext(ctx, "snapshot published",
		slog.Int("tournament_id", tournamentID),
		slog.String("key", result.Key),
		slog.Int("bytes", len(body)),
	)
	return result, nil
}

// prune deletes snapshots beyond the retention limit. Failures are logged and do not fail
// the publish that triggered them.
func (s *snapshotService) prune(ctx context.Context, tournamentID int) {
	if s.retention <= 0 {
		return
	}
	keys, err := s.uploader.List(ctx, storage.SnapshotPrefix(tournamentID))
	if err != nil {
		s.logger.WarnContext(ctx, "failed to list snapshots for pruning",
			slog.Int("tournament_id", tournamentID),
			slog.Any("error", err),
		)
		return
	}

	pruned := 0
	for _, key := range storage.ExpiredSnapshotKeys(tournamentID, keys, s.retention) {
		if err := s.uploader.Delete(ctx, key); err != nil {
			s.logger.WarnContext(ctx, "failed to delete expired snapshot",
				slog.String("key", key),
				slog.Any("error", err),
			)
			continue
		}
		pruned++
	}
	if pruned > 0 {
		s.logger.DebugContext(ctx, "expired snapshots pruned",
			slog.Int("tournament_id", tournamentID),
			slog.Int("pruned", pruned),
		)
	}
}

func (s *snapshotService) PublishActive(ctx context.Context) (int, error) {
	if s.uploader == nil {
		return 0, ErrSnapshotsDisabled
	}

	active, err := s.tournamentRepo.ListByStatus(ctx, models.StatusActive)
	if err != nil {
		return 0, fmt.Errorf("failed to list active tournaments: %w", err)
	}

	published := 0
	var errs []error
	for _, t := range active {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.Publish(ctx, t.ID); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish snapshot",
				slog.Int("tournament_id", t.ID),
				slog.Any("error", err),
			)
			errs = append(errs, fmt.Errorf("tournament %d: %w", t.ID, err))
			continue
		}
		published++
	}
	return published, errors.Join(errs...)
}
