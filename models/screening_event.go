package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// ScreeningEvent is the durable audit record of one screening. The query
// name itself is never persisted or logged; its digest is enough to
// correlate repeated screenings of the same subject.
type ScreeningEvent struct {
	Id              uuid.UUID
	QueryDigest     string
	IsHit           bool
	HitCount        int
	TopScore        float64
	Recommendation  Recommendation
	SnapshotVersion uint64
	Latency         time.Duration
	CreatedAt       time.Time
}

func NewScreeningEvent(result ScreeningResult) ScreeningEvent {
	event := ScreeningEvent{
		Id:              result.Id,
		QueryDigest:     QueryDigest(result.Query.Name),
		IsHit:           result.IsHit,
		HitCount:        result.HitCount,
		Recommendation:  RecommendationAutoClear,
		SnapshotVersion: result.SnapshotVersion,
		Latency:         result.ProcessingTime,
		CreatedAt:       result.ScreenedAt,
	}
	if len(result.Matches) > 0 {
		event.TopScore = result.Matches[0].Confidence.Overall
		event.Recommendation = result.Matches[0].Recommendation
	}
	return event
}

func QueryDigest(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])
}
