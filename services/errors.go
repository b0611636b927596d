package services

import (
	"errors"
	"fmt"

	"github.com/Dosada05/bracket-engine/repositories"
)

var (
	ErrNotFound = errors.New("not found")

	ErrValidationFailed = errors.New("validation failed")

	// Both wrap ErrNotFound.
	ErrTournamentNotFound = fmt.Errorf("tournament %w", ErrNotFound)
	ErrGroupNotFound      = fmt.Errorf("group %w", ErrNotFound)

	ErrSnapshotsDisabled = errors.New("snapshot storage is not configured")
)

// translateRepoError maps repository sentinels onto the service ones and passes
// everything else through.
func translateRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrGroupNotFound):
		return ErrGroupNotFound
	}
	return err
}
