package models

import (
	"errors"
	"fmt"
)

var ErrInvalidForfeitKind = errors.New("invalid forfeit kind")

// ForfeitKind describes how a match was decided without being played out.
type ForfeitKind string

const (
	ForfeitNone             ForfeitKind = ""
	ForfeitWalkover         ForfeitKind = "walkover"
	ForfeitRetirement       ForfeitKind = "retirement"
	ForfeitDisqualification ForfeitKind = "disqualification"
)

func (k ForfeitKind) IsValid() bool {
	switch k {
	case ForfeitNone, ForfeitWalkover, ForfeitRetirement, ForfeitDisqualification:
		return true
	}
	return false
}

// SetScore holds the points of both players in a single set.
type SetScore struct {
	P1 int `json:"p1"`
	P2 int `json:"p2"`
}

// Score is either an ordered list of per-set points or pre-aggregated set totals.
type Score struct {
	Sets   []SetScore `json:"sets,omitempty"`
	P1Sets *int       `json:"p1_sets,omitempty"`
	P2Sets *int       `json:"p2_sets,omitempty"`
}

type Match struct {
	ID           string        `json:"id" db:"id"`
	TournamentID int           `json:"tournament_id,omitempty" db:"tournament_id"`
	GroupID      string        `json:"group_id,omitempty" db:"group_id"`
	BracketType  BracketType   `json:"bracket_type,omitempty" db:"bracket_type"`
	Round        int           `json:"round" db:"round"`
	Order        int           `json:"order" db:"match_order"`
	P1ID         ParticipantID `json:"p1_id" db:"p1_id"`
	P2ID         ParticipantID `json:"p2_id" db:"p2_id"`
	WinnerID     ParticipantID `json:"winner_id,omitempty" db:"winner_id"`
	Slot         *BracketSlot  `json:"slot,omitempty" db:"-"`
	Forfeit      bool          `json:"forfeit,omitempty" db:"forfeit"`
	ForfeitKind  ForfeitKind   `json:"forfeit_kind,omitempty" db:"forfeit_kind"`
	Score        Score         `json:"score" db:"-"`
}

// HasParticipant reports whether id plays in the match.
func (m Match) HasParticipant(id ParticipantID) bool {
	return id.IsReal() && (m.P1ID == id || m.P2ID == id)
}

// Opponent returns the other side of the match, or NoParticipant if id does not play in it.
func (m Match) Opponent(id ParticipantID) ParticipantID {
	switch {
	case !id.IsReal():
		return NoParticipant
	case m.P1ID == id:
		return m.P2ID
	case m.P2ID == id:
		return m.P1ID
	}
	return NoParticipant
}

// IsDecided reports whether the winner is one of the two participants.
func (m Match) IsDecided() bool {
	return m.WinnerID.IsReal() && (m.WinnerID == m.P1ID || m.WinnerID == m.P2ID)
}

// Loser is only defined for decided matches.
func (m Match) Loser() ParticipantID {
	if !m.IsDecided() {
		return NoParticipant
	}
	return m.Opponent(m.WinnerID)
}

// ForfeitLoser returns the participant that lost the match by forfeit, if any.
func (m Match) ForfeitLoser() ParticipantID {
	if !m.Forfeit {
		return NoParticipant
	}
	return m.Loser()
}

// Validate rejects unknown forfeit kinds.
func (m Match) Validate() error {
	if !m.ForfeitKind.IsValid() {
		return fmt.Errorf("%w: %q in match %s", ErrInvalidForfeitKind, m.ForfeitKind, m.ID)
	}
	return nil
}
