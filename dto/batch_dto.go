package dto

import (
	"github.com/clearlist/screener-backend/models"
)

type BatchScreeningRequestDto struct {
	Queries []ScreeningQueryDto `json:"queries" binding:"required"`
}

type BatchRowDto struct {
	Index  int                 `json:"index"`
	Result *ScreeningResultDto `json:"result,omitempty"`
	Error  string              `json:"error,omitempty"`
}

type BatchResultDto struct {
	Rows            []BatchRowDto `json:"rows"`
	TotalProcessed  int           `json:"total_processed"`
	Hits            int           `json:"hits"`
	HitRate         float64       `json:"hit_rate"`
	SnapshotVersion uint64        `json:"snapshot_version"`
	ProcessingMs    int64         `json:"processing_ms"`
}

func AdaptBatchResultDto(result models.BatchResult) BatchResultDto {
	rows := make([]BatchRowDto, len(result.Rows))
	for i, row := range result.Rows {
		rowDto := BatchRowDto{Index: row.Index}
		if row.Err != nil {
			rowDto.Error = row.Err.Error()
		} else {
			resultDto := AdaptScreeningResultDto(row.Result)
			rowDto.Result = &resultDto
		}
		rows[i] = rowDto
	}
	return BatchResultDto{
		Rows:            rows,
		TotalProcessed:  result.TotalProcessed,
		Hits:            result.Hits,
		HitRate:         result.HitRate,
		SnapshotVersion: result.SnapshotVersion,
		ProcessingMs:    result.ProcessingTime.Milliseconds(),
	}
}
