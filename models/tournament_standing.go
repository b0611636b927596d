package models

// Standing is one row of a resolved group table.
type Standing struct {
	Rank          int           `json:"rank"`
	ParticipantID ParticipantID `json:"participant_id"`
	Name          string        `json:"name"`
	GroupID       string        `json:"group_id,omitempty"`
	Points        int           `json:"points"`
	Played        int           `json:"played"`
	Wins          int           `json:"wins"`
	Losses        int           `json:"losses"`
	ForfeitLosses int           `json:"forfeit_losses"`
	SetsFor       int           `json:"sets_for"`
	SetsAgainst   int           `json:"sets_against"`
}

// GroupStandings is the resolved table of a single group.
type GroupStandings struct {
	Group     Group      `json:"group"`
	Standings []Standing `json:"standings"`
	TieBreaks []TieBreak `json:"tie_breaks,omitempty"`
}

// TieBreak records which rule settled a group of participants level on points.
type TieBreak struct {
	Participants []ParticipantID `json:"participants"`
	Rule         string          `json:"rule"`
}
