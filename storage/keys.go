package storage

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

const snapshotPrefix = "snapshots/tournaments"

// SnapshotKey returns a fresh, unique object key for a tournament snapshot. Keys use
// time-ordered UUIDs, so later snapshots sort after earlier ones.
func SnapshotKey(tournamentID int) string {
	return SnapshotPrefix(tournamentID) + uuid.Must(uuid.NewV7()).String() + ".json"
}

// LatestSnapshotKey is overwritten on every publish.
func LatestSnapshotKey(tournamentID int) string {
	return SnapshotPrefix(tournamentID) + "latest.json"
}

// SnapshotPrefix is the folder holding every snapshot of a tournament.
func SnapshotPrefix(tournamentID int) string {
	return fmt.Sprintf("%s/%d/", snapshotPrefix, tournamentID)
}

// ExpiredSnapshotKeys returns the snapshot keys of one tournament beyond the newest keep,
// oldest first. The latest.json copy is never returned.
func ExpiredSnapshotKeys(tournamentID int, keys []string, keep int) []string {
	latest := LatestSnapshotKey(tournamentID)
	snapshots := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != latest {
			snapshots = append(snapshots, key)
		}
	}
	if len(snapshots) <= keep {
		return nil
	}
	slices.Sort(snapshots)
	return snapshots[:len(snapshots)-keep]
}
