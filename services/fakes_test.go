package services

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/Dosada05/bracket-engine/models"
	"github.com/Dosada05/bracket-engine/repositories"
	"github.com/Dosada05/bracket-engine/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memoryStore backs every repository interface with in-memory fixtures.
type memoryStore struct {
	tournaments  []models.Tournament
	groups       []models.Group
	participants []models.Participant
	matches      []models.Match
	err          error
}

func (s *memoryStore) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, t := range s.tournaments {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, repositories.ErrTournamentNotFound
}

func (s *memoryStore) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.Tournament
	for _, t := range s.tournaments {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

type groupRepo struct{ *memoryStore }

func (r groupRepo) GetByID(ctx context.Context, id string) (*models.Group, error) {
	for _, g := range r.groups {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, repositories.ErrGroupNotFound
}

func (r groupRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Group, error) {
	var out []models.Group
	for _, g := range r.groups {
		if g.TournamentID == tournamentID {
			out = append(out, g)
		}
	}
	return out, nil
}

type participantRepo struct{ *memoryStore }

func (r participantRepo) ListByGroups(ctx context.Context, groupIDs []string) ([]models.Participant, error) {
	var out []models.Participant
	for _, p := range r.participants {
		if slices.Contains(groupIDs, p.GroupID) {
			out = append(out, p)
		}
	}
	return out, nil
}

type matchRepo struct{ *memoryStore }

func (r matchRepo) ListBracket(ctx context.Context, tournamentID int, bracketType models.BracketType) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.TournamentID == tournamentID && m.BracketType == bracketType {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r matchRepo) ListByGroups(ctx context.Context, groupIDs []string) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.GroupID != "" && slices.Contains(groupIDs, m.GroupID) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
	err     error
	listErr error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: make(map[string][]byte)}
}

func (u *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = data
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

func (u *fakeUploader) List(ctx context.Context, prefix string) ([]string, error) {
	if u.listErr != nil {
		return nil, u.listErr
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	var keys []string
	for key := range u.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

type recordingHub struct {
	mu       sync.Mutex
	rooms    []string
	messages []any
}

func (h *recordingHub) BroadcastToRoom(roomID string, message any) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rooms = append(h.rooms, roomID)
	h.messages = append(h.messages, message)
	return 1
}

func intp(v int) *int { return &v }

// fixture is a tournament with one finished winners bracket and two round-robin groups.
func fixture() *memoryStore {
	won := func(id, p1, p2 string, group string, forfeit bool) models.Match {
		m := models.Match{
			ID:           id,
			TournamentID: 1,
			GroupID:      group,
			P1ID:         models.ParticipantID(p1),
			P2ID:         models.ParticipantID(p2),
			WinnerID:     models.ParticipantID(p1),
			Forfeit:      forfeit,
			Score:        models.Score{P1Sets: intp(3), P2Sets: intp(1)},
		}
		if forfeit {
			m.ForfeitKind = models.ForfeitWalkover
			m.Score = models.Score{}
		}
		return m
	}

	return &memoryStore{
		tournaments: []models.Tournament{
			{ID: 1, Name: "Spring Open", Status: models.StatusActive},
			{ID: 2, Name: "Autumn Cup", Status: models.StatusCompleted},
		},
		groups: []models.Group{
			{ID: "A", TournamentID: 1, Name: "Group A", Position: 1},
			{ID: "B", TournamentID: 1, Name: "Group B", Position: 2},
		},
		participants: []models.Participant{
			{ID: "a1", TournamentID: 1, Name: "Ann", GroupID: "A"},
			{ID: "a2", TournamentID: 1, Name: "Bob", GroupID: "A"},
			{ID: "a3", TournamentID: 1, Name: "Cid", GroupID: "A"},
			{ID: "b1", TournamentID: 1, Name: "Dee", GroupID: "B"},
			{ID: "b2", TournamentID: 1, Name: "Eve", GroupID: "B"},
		},
		matches: []models.Match{
			// Group A is a three-way cycle: a1 beats a2, a2 beats a3, a3 beats a1.
			won("A1", "a1", "a2", "A", false),
			won("A2", "a2", "a3", "A", false),
			won("A3", "a3", "a1", "A", false),
			// Group B: b2 wins by walkover.
			won("B1", "b2", "b1", "B", true),
			// Winners bracket final.
			{ID: "R0M1", TournamentID: 1, BracketType: models.BracketWinners, Round: 0, Order: 1, P1ID: "a1", P2ID: "b2",
				Slot: &models.BracketSlot{LowPlace: 1, HighPlace: 2}},
		},
	}
}
