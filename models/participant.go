package models

// ParticipantID references a participant inside match data. Bracket slots that are not
// yet filled carry one of the sentinel values below.
type ParticipantID string

const (
	NoParticipant    ParticipantID = ""
	ByeParticipant   ParticipantID = "bye"
	EmptyParticipant ParticipantID = "empty"
)

// IsReal reports whether the reference points at an actual player.
func (id ParticipantID) IsReal() bool {
	return id != NoParticipant && id != ByeParticipant && id != EmptyParticipant
}

// Participant is a registered player of a tournament.
type Participant struct {
	ID           ParticipantID `json:"id" db:"id"`
	TournamentID int           `json:"tournament_id" db:"tournament_id"`
	Name         string        `json:"name" db:"name"`
	Rank         int           `json:"rank" db:"rank"`
	// GroupID is empty when the participant is not grouped, or when the row is the
	// group's own placeholder.
	GroupID string `json:"group_id,omitempty" db:"group_id"`
}

// IsGrouped reports whether the participant belongs to a round-robin group.
func (p Participant) IsGrouped() bool {
	return p.GroupID != ""
}
