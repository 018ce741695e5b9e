package util

import (
	"context"
	"log/slog"
	"time"
)

const ArchivePrefix = "archives"

// StartArchiveCleanupJob removes uploaded archives older than retention,
// once at startup and then every interval, until ctx is done.
func StartArchiveCleanupJob(ctx context.Context, store IArchiveStore, retention, interval time.Duration) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("Panic occurred in archive cleanup job", "panic", r)
			}
		}()

		slog.Info("Archive cleanup job: Initial run starting")
		CleanupArchives(ctx, store, retention, time.Now())

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("Archive cleanup job stopped")
				return
			case <-ticker.C:
				slog.Info("Archive cleanup job: Scheduled run starting")
				CleanupArchives(ctx, store, retention, time.Now())
			}
		}
	}()

	slog.Info("Archive cleanup job started successfully", "retention", retention.String(), "interval", interval.String())
}

// CleanupArchives deletes archives last modified before now-retention and
// returns how many were removed. Failed deletions are logged and skipped.
func CleanupArchives(ctx context.Context, store IArchiveStore, retention time.Duration, now time.Time) int {
	startTime := time.Now()
	cutoff := now.Add(-retention)

	expired, err := store.ListBefore(ctx, ArchivePrefix+"/", cutoff)
	if err != nil {
		slog.Error("CleanupArchives: Listing failed", "error", err)
	}

	removed := 0
	for _, object := range expired {
		if err := store.Delete(ctx, object); err != nil {
			slog.Warn("CleanupArchives: Failed to delete archive", "object", object, "error", err)
			continue
		}
		removed++
	}

	slog.Info("CleanupArchives: Completed",
		"removed", removed,
		"expired", len(expired),
		"cutoff", cutoff,
		"duration", time.Since(startTime))
	return removed
}
