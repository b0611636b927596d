package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/bracket-engine/models"
	"github.com/lib/pq"
)

type ParticipantRepository interface {
	ListByGroups(ctx context.Context, groupIDs []string) ([]models.Participant, error)
}

type postgresParticipantRepository struct {
	db SQLExecutor
}

func NewPostgresParticipantRepository(db SQLExecutor) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

const participantColumns = `id, tournament_id, name, rank, group_id`

// ListByGroups returns the participants of every listed group, in one query.
func (r *postgresParticipantRepository) ListByGroups(ctx context.Context, groupIDs []string) ([]models.Participant, error) {
	if len(groupIDs) == 0 {
		return []models.Participant{}, nil
	}
	query := `SELECT ` + participantColumns + `
		FROM participants
		WHERE group_id = ANY($1)
		ORDER BY group_id ASC, rank ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(groupIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list participants for groups %v: %w", groupIDs, err)
	}
	return collectParticipants(rows)
}

func collectParticipants(rows *sql.Rows) ([]models.Participant, error) {
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during participant rows iteration: %w", err)
	}
	return participants, nil
}

func scanParticipant(row rowScanner) (models.Participant, error) {
	var (
		p       models.Participant
		groupID sql.NullString
	)
	if err := row.Scan(&p.ID, &p.TournamentID, &p.Name, &p.Rank, &groupID); err != nil {
		return models.Participant{}, fmt.Errorf("failed to scan participant row: %w", err)
	}
	p.GroupID = groupID.String
	return p, nil
}
