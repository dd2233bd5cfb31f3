package dto

import (
	"time"

	"github.com/guregu/null/v5"

	"github.com/clearlist/screener-backend/models"
)

type ScreeningQueryDto struct {
	Name           string      `json:"name" binding:"required"`
	DocumentNumber null.String `json:"document_number"`
	DocumentType   null.String `json:"document_type"`
	DateOfBirth    null.String `json:"date_of_birth"`
	Nationality    null.String `json:"nationality"`
	Country        null.String `json:"country"`
}

func AdaptScreeningQuery(dto ScreeningQueryDto) models.ScreeningQuery {
	return models.ScreeningQuery{
		Name:           dto.Name,
		DocumentNumber: dto.DocumentNumber.ValueOrZero(),
		DocumentType:   dto.DocumentType.ValueOrZero(),
		DateOfBirth:    dto.DateOfBirth.ValueOrZero(),
		Nationality:    dto.Nationality.ValueOrZero(),
		Country:        dto.Country.ValueOrZero(),
	}
}

type ConfidenceDto struct {
	Overall     float64  `json:"overall"`
	Name        float64  `json:"name"`
	Document    float64  `json:"document"`
	Dob         float64  `json:"dob"`
	Nationality float64  `json:"nationality"`
	Address     float64  `json:"address"`
	Included    []string `json:"included_dimensions"`
}

type MatchedEntityDto struct {
	ExternalId  string   `json:"external_id"`
	Source      string   `json:"source"`
	Kind        string   `json:"kind"`
	PrimaryName string   `json:"primary_name"`
	Programs    []string `json:"programs,omitempty"`
}

type ScreeningMatchDto struct {
	Entity         MatchedEntityDto `json:"entity"`
	MatchedName    string           `json:"matched_name"`
	MatchLayer     int              `json:"match_layer"`
	Confidence     ConfidenceDto    `json:"confidence"`
	Flags          []string         `json:"flags,omitempty"`
	Recommendation string           `json:"recommendation"`
	Disposition    string           `json:"disposition"`
}

type ScreeningResultDto struct {
	Id              string              `json:"id"`
	IsHit           bool                `json:"is_hit"`
	HitCount        int                 `json:"hit_count"`
	AutoCleared     int                 `json:"auto_cleared"`
	Matches         []ScreeningMatchDto `json:"matches"`
	SnapshotVersion uint64              `json:"snapshot_version"`
	ProcessingMs    int64               `json:"processing_ms"`
	ScreenedAt      time.Time           `json:"screened_at"`
}

// PresentationLabel maps the engine's recommendation onto the coarser
// three-state vocabulary consumer systems expect.
func PresentationLabel(r models.Recommendation) string {
	switch r {
	case models.RecommendationAutoEscalate:
		return "REJECT"
	case models.RecommendationManualReview, models.RecommendationLowConfidenceReview:
		return "REVIEW"
	case models.RecommendationAutoClear:
		return "APPROVE"
	}
	return "REVIEW"
}

func AdaptScreeningMatchDto(match models.ScreeningMatch) ScreeningMatchDto {
	return ScreeningMatchDto{
		Entity: MatchedEntityDto{
			ExternalId:  match.EntityId.ExternalId,
			Source:      match.EntityId.Source.String(),
			Kind:        match.Entity.Kind.String(),
			PrimaryName: match.Entity.PrimaryName,
			Programs:    match.Entity.Programs,
		},
		MatchedName: match.MatchedName,
		MatchLayer:  match.MatchLayer,
		Confidence: ConfidenceDto{
			Overall:     match.Confidence.Overall,
			Name:        match.Confidence.Name,
			Document:    match.Confidence.Document,
			Dob:         match.Confidence.Dob,
			Nationality: match.Confidence.Nationality,
			Address:     match.Confidence.Address,
			Included:    match.Confidence.Included,
		},
		Flags:          match.Flags,
		Recommendation: match.Recommendation.String(),
		Disposition:    PresentationLabel(match.Recommendation),
	}
}

func AdaptScreeningResultDto(result models.ScreeningResult) ScreeningResultDto {
	matches := make([]ScreeningMatchDto, len(result.Matches))
	for i, match := range result.Matches {
		matches[i] = AdaptScreeningMatchDto(match)
	}
	return ScreeningResultDto{
		Id:              result.Id.String(),
		IsHit:           result.IsHit,
		HitCount:        result.HitCount,
		AutoCleared:     result.AutoCleared,
		Matches:         matches,
		SnapshotVersion: result.SnapshotVersion,
		ProcessingMs:    result.ProcessingTime.Milliseconds(),
		ScreenedAt:      result.ScreenedAt,
	}
}
