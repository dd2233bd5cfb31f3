package dto

import (
	"time"

	"github.com/clearlist/screener-backend/models"
)

type IngestReportDto struct {
	Source             string    `json:"source"`
	EntitiesAdded      int       `json:"entities_added"`
	EntitiesUpdated    int       `json:"entities_updated"`
	EntitiesRemoved    int       `json:"entities_removed"`
	TotalEntities      int       `json:"total_entities"`
	SkippedRecords     int       `json:"skipped_records"`
	ValidationErrors   []string  `json:"validation_errors,omitempty"`
	ValidationWarnings []string  `json:"validation_warnings,omitempty"`
	SnapshotVersion    uint64    `json:"snapshot_version"`
	IngestedAt         time.Time `json:"ingested_at"`
}

func AdaptIngestReportDto(report models.IngestReport) IngestReportDto {
	return IngestReportDto{
		Source:             report.Source.String(),
		EntitiesAdded:      report.EntitiesAdded,
		EntitiesUpdated:    report.EntitiesUpdated,
		EntitiesRemoved:    report.EntitiesRemoved,
		TotalEntities:      report.TotalEntities,
		SkippedRecords:     report.SkippedRecords,
		ValidationErrors:   report.ValidationErrors,
		ValidationWarnings: report.ValidationWarnings,
		SnapshotVersion:    report.SnapshotVersion,
		IngestedAt:         report.IngestedAt,
	}
}

type IndexFreshnessDto struct {
	Version     uint64    `json:"version"`
	BuiltAt     time.Time `json:"built_at"`
	SourceHash  string    `json:"source_hash"`
	EntityCount int       `json:"entity_count"`
}

func AdaptIndexFreshnessDto(freshness models.IndexFreshness) IndexFreshnessDto {
	return IndexFreshnessDto{
		Version:     freshness.Version,
		BuiltAt:     freshness.BuiltAt,
		SourceHash:  freshness.SourceHash,
		EntityCount: freshness.EntityCount,
	}
}

type ScreeningEventDto struct {
	Id              string    `json:"id"`
	QueryDigest     string    `json:"query_digest"`
	IsHit           bool      `json:"is_hit"`
	HitCount        int       `json:"hit_count"`
	TopScore        float64   `json:"top_score"`
	Recommendation  string    `json:"recommendation"`
	SnapshotVersion uint64    `json:"snapshot_version"`
	LatencyMs       int64     `json:"latency_ms"`
	CreatedAt       time.Time `json:"created_at"`
}

func AdaptScreeningEventDto(event models.ScreeningEvent) ScreeningEventDto {
	return ScreeningEventDto{
		Id:              event.Id.String(),
		QueryDigest:     event.QueryDigest,
		IsHit:           event.IsHit,
		HitCount:        event.HitCount,
		TopScore:        event.TopScore,
		Recommendation:  event.Recommendation.String(),
		SnapshotVersion: event.SnapshotVersion,
		LatencyMs:       event.Latency.Milliseconds(),
		CreatedAt:       event.CreatedAt,
	}
}
