package repositories

import (
	"database/sql"
	"errors"
	"reflect"
	"testing"

	"github.com/Dosada05/bracket-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRow assigns prepared values to the scan destinations in order.
type fakeRow struct {
	values []any
	err    error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	if len(dest) != len(f.values) {
		return errors.New("column count mismatch")
	}
	for i, v := range f.values {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func matchRow(slotLow, slotHigh sql.NullInt64, sets []byte, p1Sets, p2Sets sql.NullInt64) fakeRow {
	return fakeRow{values: []any{
		"m1",
		3,
		sql.NullString{String: "g1", Valid: true},
		sql.NullString{},
		2,
		1,
		models.ParticipantID("a"),
		models.ParticipantID("b"),
		models.ParticipantID("a"),
		slotLow,
		slotHigh,
		true,
		models.ForfeitWalkover,
		sets,
		p1Sets,
		p2Sets,
	}}
}

func TestScanMatch_SetsAndSlot(t *testing.T) {
	row := matchRow(
		sql.NullInt64{Int64: 3, Valid: true},
		sql.NullInt64{Int64: 4, Valid: true},
		[]byte(`[{"p1":11,"p2":7},{"p1":9,"p2":11}]`),
		sql.NullInt64{},
		sql.NullInt64{},
	)

	m, err := scanMatch(row)
	require.NoError(t, err)
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, 3, m.TournamentID)
	assert.Equal(t, "g1", m.GroupID)
	assert.Equal(t, models.BracketType(""), m.BracketType)
	assert.Equal(t, 2, m.Round)
	assert.Equal(t, 1, m.Order)
	assert.True(t, m.Forfeit)
	assert.Equal(t, models.ForfeitWalkover, m.ForfeitKind)
	require.NotNil(t, m.Slot)
	assert.Equal(t, models.BracketSlot{LowPlace: 3, HighPlace: 4}, *m.Slot)
	assert.Equal(t, []models.SetScore{{P1: 11, P2: 7}, {P1: 9, P2: 11}}, m.Score.Sets)
	assert.Nil(t, m.Score.P1Sets)
}

func TestScanMatch_AggregatedScoreWithoutSlot(t *testing.T) {
	row := matchRow(sql.NullInt64{}, sql.NullInt64{}, nil,
		sql.NullInt64{Int64: 3, Valid: true}, sql.NullInt64{Int64: 1, Valid: true})

	m, err := scanMatch(row)
	require.NoError(t, err)
	assert.Nil(t, m.Slot)
	assert.Nil(t, m.Score.Sets)
	require.NotNil(t, m.Score.P1Sets)
	require.NotNil(t, m.Score.P2Sets)
	assert.Equal(t, 3, *m.Score.P1Sets)
	assert.Equal(t, 1, *m.Score.P2Sets)
}

func TestScanMatch_Errors(t *testing.T) {
	_, err := scanMatch(matchRow(sql.NullInt64{Int64: 3, Valid: true}, sql.NullInt64{}, nil, sql.NullInt64{}, sql.NullInt64{}))
	assert.ErrorIs(t, err, models.ErrInvalidBracketSlot)

	_, err = scanMatch(matchRow(sql.NullInt64{Int64: 4, Valid: true}, sql.NullInt64{Int64: 3, Valid: true}, nil, sql.NullInt64{}, sql.NullInt64{}))
	assert.ErrorIs(t, err, models.ErrInvalidBracketSlot)

	_, err = scanMatch(matchRow(sql.NullInt64{}, sql.NullInt64{}, []byte(`{"p1":1}`), sql.NullInt64{}, sql.NullInt64{}))
	assert.Error(t, err)

	scanErr := errors.New("boom")
	_, err = scanMatch(fakeRow{err: scanErr})
	assert.ErrorIs(t, err, scanErr)
}

func TestScanParticipant_NullGroup(t *testing.T) {
	p, err := scanParticipant(fakeRow{values: []any{
		models.ParticipantID("p1"), 1, "Ada", 4, sql.NullString{},
	}})
	require.NoError(t, err)
	assert.Equal(t, models.ParticipantID("p1"), p.ID)
	assert.Equal(t, "Ada", p.Name)
	assert.False(t, p.IsGrouped())
}

func TestDecodeSets(t *testing.T) {
	sets, err := decodeSets([]byte("null"))
	require.NoError(t, err)
	assert.Nil(t, sets)

	sets, err = decodeSets([]byte(`[{"p1":11,"p2":13}]`))
	require.NoError(t, err)
	assert.Equal(t, []models.SetScore{{P1: 11, P2: 13}}, sets)
}
