package usecases

import (
	"bytes"
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/clearlist/screener-backend/infra"
	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/repositories"
	"github.com/clearlist/screener-backend/usecases/indexes"
	"github.com/clearlist/screener-backend/utils"
)

// FeedDownloader fetches raw feed bytes for the sources it is configured
// with; repositories.FeedDownloader is the production implementation.
type FeedDownloader interface {
	Download(ctx context.Context, source models.ListSource) ([]byte, error)
	Sources() []models.ListSource
}

// IngestionUsecase runs one ingestion cycle per call: parse a feed, build
// the next snapshot, publish it. Any failure along the way leaves the
// previously published snapshot serving queries.
type IngestionUsecase struct {
	publisher  *indexes.Publisher
	downloader FeedDownloader
}

// IngestFeed parses the given feed document and, on success, atomically
// publishes the resulting snapshot. Nothing is published on error. The
// whole read-build-publish cycle runs under the publisher's update lock, so
// concurrent ingestions of different sources each build on top of the
// other's result instead of evicting it.
func (uc IngestionUsecase) IngestFeed(
	ctx context.Context,
	source models.ListSource,
	feedBytes []byte,
) (models.IngestReport, error) {
	logger := utils.LoggerFromContext(ctx)

	parser, err := repositories.ParserFor(source)
	if err != nil {
		return models.IngestReport{}, err
	}

	var report models.IngestReport
	err = uc.publisher.Update(func(previous *indexes.Snapshot) (*indexes.Snapshot, error) {
		validation := &models.FeedValidation{}
		builder := indexes.NewBuilder(previous, source, validation)

		parseValidation, err := parser.Parse(ctx, bytes.NewReader(feedBytes), builder.Add)
		if err != nil {
			infra.IngestionsTotal.WithLabelValues(source.String(), "parse_error").Inc()
			logger.ErrorContext(ctx, "feed parse failed, keeping previous snapshot",
				"source", source.String(), "error", err.Error())
			return nil, err
		}
		validation.Merge(parseValidation)

		snapshot, finalized, err := builder.Finalize(feedBytes, time.Now())
		report = finalized
		if err != nil {
			infra.IngestionsTotal.WithLabelValues(source.String(), "empty").Inc()
			logger.ErrorContext(ctx, "ingestion cycle produced no entities, keeping previous snapshot",
				"source", source.String(), "error", err.Error())
			return nil, err
		}
		return snapshot, nil
	})
	if err != nil {
		return report, err
	}

	// Warning text can embed content from the feed itself, sanitize it.
	if len(report.ValidationWarnings) > 0 {
		logger.WarnContext(ctx, "feed contained skipped or suspect records",
			"source", source.String(),
			"skipped", report.SkippedRecords,
			"first_warning", utils.SanitizeForLog(report.ValidationWarnings[0]))
	}

	infra.IngestionsTotal.WithLabelValues(source.String(), "ok").Inc()
	infra.IndexEntities.Set(float64(report.TotalEntities))
	logger.InfoContext(ctx, "published new watchlist snapshot",
		"source", source.String(),
		"version", report.SnapshotVersion,
		"entities", report.TotalEntities,
		"added", report.EntitiesAdded,
		"updated", report.EntitiesUpdated,
		"removed", report.EntitiesRemoved,
		"skipped", report.SkippedRecords,
		"warnings", len(report.ValidationWarnings),
	)

	return report, nil
}

// RefreshSource downloads the latest feed for one source and ingests it.
func (uc IngestionUsecase) RefreshSource(ctx context.Context, source models.ListSource) (models.IngestReport, error) {
	feedBytes, err := uc.downloader.Download(ctx, source)
	if err != nil {
		return models.IngestReport{}, errors.Wrapf(err, "downloading %s feed", source)
	}
	return uc.IngestFeed(ctx, source, feedBytes)
}

// ConfiguredSources lists the sources the downloader is set up to fetch,
// the set a full refresh covers.
func (uc IngestionUsecase) ConfiguredSources() []models.ListSource {
	return uc.downloader.Sources()
}
