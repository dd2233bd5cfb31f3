package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/clearlist/screener-backend/infra"
	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/usecases/indexes"
	"github.com/clearlist/screener-backend/usecases/matching"
	"github.com/clearlist/screener-backend/utils"
)

const (
	MAX_CONCURRENT_SCREENINGS = 5
	MAX_BATCH_SIZE            = 1000
)

type screeningEventWriter interface {
	InsertScreeningEvent(ctx context.Context, event models.ScreeningEvent) error
}

// ScreeningUsecase serves screening queries against the live snapshot. The
// matcher mutates nothing, so one usecase value handles any number of
// concurrent requests.
type ScreeningUsecase struct {
	publisher *indexes.Publisher
	matcher   *matching.Matcher

	// optional audit trail; nil when the engine runs without a database
	eventWriter screeningEventWriter
}

// Screen runs one query against the currently published snapshot.
func (uc ScreeningUsecase) Screen(ctx context.Context, query models.ScreeningQuery) (models.ScreeningResult, error) {
	snapshot, err := uc.publisher.Current()
	if err != nil {
		return models.ScreeningResult{}, err
	}
	return uc.screenOnSnapshot(ctx, query, snapshot)
}

func (uc ScreeningUsecase) screenOnSnapshot(
	ctx context.Context,
	query models.ScreeningQuery,
	snapshot *indexes.Snapshot,
) (models.ScreeningResult, error) {
	start := time.Now()

	if err := query.Validate(start); err != nil {
		return models.ScreeningResult{}, err
	}

	matches, autoCleared := uc.matcher.Match(query, snapshot)

	result := models.ScreeningResult{
		Id:              uuid.New(),
		Query:           query,
		IsHit:           len(matches) > 0,
		Matches:         matches,
		HitCount:        len(matches),
		AutoCleared:     autoCleared,
		SnapshotVersion: snapshot.Version(),
		ProcessingTime:  time.Since(start),
		ScreenedAt:      start,
	}

	uc.recordEvent(ctx, result)
	infra.ScreeningsTotal.WithLabelValues(hitLabel(result.IsHit)).Inc()

	// Query names never reach the logs; the digest is enough to correlate.
	utils.LoggerFromContext(ctx).InfoContext(ctx, "screening done",
		"query_digest", models.QueryDigest(query.Name)[:12],
		"hits", result.HitCount,
		"auto_cleared", result.AutoCleared,
		"snapshot_version", result.SnapshotVersion,
		"duration", result.ProcessingTime.String(),
	)

	return result, nil
}

func (uc ScreeningUsecase) recordEvent(ctx context.Context, result models.ScreeningResult) {
	if uc.eventWriter == nil {
		return
	}
	if err := uc.eventWriter.InsertScreeningEvent(ctx, models.NewScreeningEvent(result)); err != nil {
		// The audit trail is best effort; the screening result stands.
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "failed to persist screening event",
			"screening_id", result.Id.String(), "error", err.Error())
	}
}

// ScreenBatch screens an ordered collection of queries on a bounded worker
// pool. The whole batch runs against the snapshot fetched once up front, so
// it stays internally consistent even when a refresh publishes mid-batch.
// Row failures are isolated: the output always has exactly one row per
// input, in input order.
func (uc ScreeningUsecase) ScreenBatch(ctx context.Context, queries []models.ScreeningQuery) (models.BatchResult, error) {
	if len(queries) == 0 {
		return models.BatchResult{}, models.ErrEmptyBatch
	}
	if len(queries) > MAX_BATCH_SIZE {
		return models.BatchResult{}, models.ErrBatchTooLarge
	}

	snapshot, err := uc.publisher.Current()
	if err != nil {
		return models.BatchResult{}, err
	}

	start := time.Now()
	rows := make([]models.BatchRow, len(queries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(MAX_CONCURRENT_SCREENINGS)

	for i, query := range queries {
		group.Go(func() error {
			select {
			case <-groupCtx.Done():
				rows[i] = models.BatchRow{Index: i, Err: groupCtx.Err()}
				return nil
			default:
			}

			result, err := uc.screenOnSnapshot(groupCtx, query, snapshot)
			rows[i] = models.BatchRow{Index: i, Result: result, Err: err}
			return nil
		})
	}
	// Workers never return errors; row failures live on their row.
	_ = group.Wait()

	hits := 0
	processed := 0
	for _, row := range rows {
		if row.Err != nil {
			continue
		}
		processed++
		if row.Result.IsHit {
			hits++
		}
	}

	result := models.BatchResult{
		Rows:            rows,
		TotalProcessed:  processed,
		Hits:            hits,
		SnapshotVersion: snapshot.Version(),
		ProcessingTime:  time.Since(start),
	}
	if processed > 0 {
		result.HitRate = float64(hits) / float64(processed)
	}

	return result, nil
}

func hitLabel(isHit bool) string {
	if isHit {
		return "hit"
	}
	return "clear"
}
