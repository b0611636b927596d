package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/bracket-engine/models"
)

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

func decodeSets(data []byte) ([]models.SetScore, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var sets []models.SetScore
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("failed to decode match sets: %w", err)
	}
	return sets, nil
}

func slotFromColumns(low, high sql.NullInt64) (*models.BracketSlot, error) {
	if !low.Valid && !high.Valid {
		return nil, nil
	}
	if low.Valid != high.Valid {
		return nil, fmt.Errorf("%w: only one of slot_low/slot_high is set", models.ErrInvalidBracketSlot)
	}
	slot := models.BracketSlot{LowPlace: int(low.Int64), HighPlace: int(high.Int64)}
	if err := slot.Validate(); err != nil {
		return nil, err
	}
	return &slot, nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
