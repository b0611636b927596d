package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/bracket-engine/models"
	"github.com/lib/pq"
)

type MatchRepository interface {
	ListBracket(ctx context.Context, tournamentID int, bracketType models.BracketType) ([]models.Match, error)
	ListByGroups(ctx context.Context, groupIDs []string) ([]models.Match, error)
}

type postgresMatchRepository struct {
	db SQLExecutor
}

func NewPostgresMatchRepository(db SQLExecutor) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, tournament_id, group_id, bracket_type, round, match_order,
		p1_id, p2_id, winner_id, slot_low, slot_high, forfeit, forfeit_kind,
		sets, p1_sets, p2_sets`

func (r *postgresMatchRepository) ListBracket(ctx context.Context, tournamentID int, bracketType models.BracketType) ([]models.Match, error) {
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE tournament_id = $1 AND bracket_type = $2
		ORDER BY round ASC, match_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, bracketType)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s bracket matches for tournament %d: %w", bracketType, tournamentID, err)
	}
	return collectMatches(rows)
}

func (r *postgresMatchRepository) ListByGroups(ctx context.Context, groupIDs []string) ([]models.Match, error) {
	if len(groupIDs) == 0 {
		return []models.Match{}, nil
	}
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE group_id = ANY($1)
		ORDER BY group_id ASC, round ASC, match_order ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for groups %v: %w", groupIDs, err)
	}
	return collectMatches(rows)
}

func collectMatches(rows *sql.Rows) ([]models.Match, error) {
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func scanMatch(row rowScanner) (models.Match, error) {
	var (
		m                models.Match
		groupID, bracket sql.NullString
		slotLow, slotHi  sql.NullInt64
		sets             []byte
		p1Sets, p2Sets   sql.NullInt64
	)
	err := row.Scan(
		&m.ID,
		&m.TournamentID,
		&groupID,
		&bracket,
		&m.Round,
		&m.Order,
		&m.P1ID,
		&m.P2ID,
		&m.WinnerID,
		&slotLow,
		&slotHi,
		&m.Forfeit,
		&m.ForfeitKind,
		&sets,
		&p1Sets,
		&p2Sets,
	)
	if err != nil {
		return models.Match{}, fmt.Errorf("failed to scan match row: %w", err)
	}

	m.GroupID = groupID.String
	m.BracketType = models.BracketType(bracket.String)

	if m.Slot, err = slotFromColumns(slotLow, slotHi); err != nil {
		return models.Match{}, fmt.Errorf("match %s: %w", m.ID, err)
	}
	if m.Score.Sets, err = decodeSets(sets); err != nil {
		return models.Match{}, fmt.Errorf("match %s: %w", m.ID, err)
	}
	m.Score.P1Sets = intPtr(p1Sets)
	m.Score.P2Sets = intPtr(p2Sets)
	return m, nil
}
