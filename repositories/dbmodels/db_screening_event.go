package dbmodels

import (
	"time"

	"github.com/google/uuid"

	"github.com/clearlist/screener-backend/models"
)

const TABLE_SCREENING_EVENTS = "screening_events"

// DBScreeningEvent is the audit row persisted per screening. Only outcome
// metadata is stored; the raw query name never reaches the database, a
// digest is kept for correlation instead.
type DBScreeningEvent struct {
	Id              uuid.UUID `db:"id"`
	QueryDigest     string    `db:"query_digest"`
	IsHit           bool      `db:"is_hit"`
	HitCount        int       `db:"hit_count"`
	TopScore        float64   `db:"top_score"`
	Recommendation  string    `db:"recommendation"`
	SnapshotVersion int64     `db:"snapshot_version"`
	LatencyMs       int64     `db:"latency_ms"`
	CreatedAt       time.Time `db:"created_at"`
}

var SelectScreeningEventColumns = []string{
	"id",
	"query_digest",
	"is_hit",
	"hit_count",
	"top_score",
	"recommendation",
	"snapshot_version",
	"latency_ms",
	"created_at",
}

func AdaptScreeningEvent(db DBScreeningEvent) (models.ScreeningEvent, error) {
	return models.ScreeningEvent{
		Id:              db.Id,
		QueryDigest:     db.QueryDigest,
		IsHit:           db.IsHit,
		HitCount:        db.HitCount,
		TopScore:        db.TopScore,
		Recommendation:  models.RecommendationFrom(db.Recommendation),
		SnapshotVersion: uint64(db.SnapshotVersion),
		Latency:         time.Duration(db.LatencyMs) * time.Millisecond,
		CreatedAt:       db.CreatedAt,
	}, nil
}
