package repositories

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/pure_utils"
	"github.com/clearlist/screener-backend/repositories/dbmodels"
)

// ScreeningLogRepository persists the audit trail of screenings. It is an
// optional collaborator: the engine screens fine without a database.
type ScreeningLogRepository struct {
	exec Executor
}

func NewScreeningLogRepository(exec Executor) *ScreeningLogRepository {
	return &ScreeningLogRepository{exec: exec}
}

func (repo *ScreeningLogRepository) InsertScreeningEvent(ctx context.Context, event models.ScreeningEvent) error {
	query := NewQueryBuilder().
		Insert(dbmodels.TABLE_SCREENING_EVENTS).
		Columns(dbmodels.SelectScreeningEventColumns...).
		Values(
			event.Id,
			event.QueryDigest,
			event.IsHit,
			event.HitCount,
			event.TopScore,
			event.Recommendation.String(),
			int64(event.SnapshotVersion),
			event.Latency.Milliseconds(),
			event.CreatedAt,
		)

	sql, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}

	if _, err := repo.exec.Exec(ctx, sql, args...); err != nil {
		return errors.Wrap(err, "error inserting screening event")
	}
	return nil
}

func (repo *ScreeningLogRepository) ListScreeningEvents(ctx context.Context, limit int) ([]models.ScreeningEvent, error) {
	query := NewQueryBuilder().
		Select(dbmodels.SelectScreeningEventColumns...).
		From(dbmodels.TABLE_SCREENING_EVENTS).
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := repo.exec.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}

	dbEvents, err := pgx.CollectRows(rows, pgx.RowToStructByName[dbmodels.DBScreeningEvent])
	if err != nil {
		return nil, errors.Wrap(err, "error scanning screening events")
	}

	return pure_utils.MapErr(dbEvents, dbmodels.AdaptScreeningEvent)
}
