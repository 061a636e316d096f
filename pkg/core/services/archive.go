package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultArchiveAfterDays is how long a finished roster stays active before
// the maintenance pass archives it.
const DefaultArchiveAfterDays = 30

// ArchiveStore defines the database operations needed for archiving
type ArchiveStore interface {
	ArchiveRostersEndedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// ArchiveStale flips active rosters whose week ended more than olderThanDays
// ago to archived status. It returns the number of rosters archived.
func ArchiveStale(ctx context.Context, store ArchiveStore, logger *zap.Logger, olderThanDays int) (int, error) {
	if olderThanDays <= 0 {
		olderThanDays = DefaultArchiveAfterDays
	}

	cutoff := dateOnly(time.Now()).AddDate(0, 0, -olderThanDays)
	logger.Debug("Archiving stale rosters", zap.Time("cutoff", cutoff))

	count, err := store.ArchiveRostersEndedBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to archive rosters ended before %s: %w", cutoff.Format("2006-01-02"), err)
	}

	logger.Info("Archived stale rosters", zap.Int("count", count))
	return count, nil
}
