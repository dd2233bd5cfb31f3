package jobs

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/usecases"
	"github.com/clearlist/screener-backend/utils"
)

// RefreshWatchlistFeeds downloads and ingests every configured source. A
// failing source is logged and skipped; the other sources still refresh and
// their snapshots publish normally.
func RefreshWatchlistFeeds(ctx context.Context, uc usecases.Usecases) error {
	logger := utils.LoggerFromContext(ctx)
	usecase := uc.NewIngestionUsecase()

	var firstErr error
	for _, source := range usecase.ConfiguredSources() {
		report, err := usecase.RefreshSource(ctx, source)
		if err != nil {
			logger.ErrorContext(ctx, "feed refresh failed",
				"source", source.String(), "error", err.Error())
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "refreshing %s", source)
			}
			continue
		}
		logger.InfoContext(ctx, "feed refreshed",
			"source", source.String(),
			"snapshot_version", report.SnapshotVersion,
			"entities", report.TotalEntities,
		)
	}
	return firstErr
}

// LoadInitialFeeds performs the first ingestion at startup so the engine
// becomes ready without waiting for the first scheduled refresh.
func LoadInitialFeeds(ctx context.Context, uc usecases.Usecases, sources []models.ListSource) error {
	usecase := uc.NewIngestionUsecase()
	for _, source := range sources {
		if _, err := usecase.RefreshSource(ctx, source); err != nil {
			return errors.Wrapf(err, "initial load of %s", source)
		}
	}
	return nil
}
