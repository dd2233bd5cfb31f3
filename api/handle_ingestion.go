package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearlist/screener-backend/dto"
	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/repositories"
	"github.com/clearlist/screener-backend/usecases"
)

// handleIngestFeed ingests a feed document posted as the request body. Used
// for manual loads and replaying archived feeds.
func handleIngestFeed(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		source := models.ListSourceFrom(c.Param("source"))
		if source == models.ListSourceUnknown {
			presentError(ctx, c, models.ErrUnknownSource)
			return
		}

		feedBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, repositories.MaxFeedBytes+1))
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})
			return
		}
		if len(feedBytes) == 0 {
			presentError(ctx, c, models.ErrEmptyFeedBody)
			return
		}
		if int64(len(feedBytes)) > repositories.MaxFeedBytes {
			presentError(ctx, c, models.ErrFeedOversized)
			return
		}

		usecase := uc.NewIngestionUsecase()
		report, err := usecase.IngestFeed(ctx, source, feedBytes)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptIngestReportDto(report))
	}
}

// handleRefreshFeed downloads the latest published feed for a source and
// ingests it.
func handleRefreshFeed(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		source := models.ListSourceFrom(c.Param("source"))
		if source == models.ListSourceUnknown {
			presentError(ctx, c, models.ErrUnknownSource)
			return
		}

		usecase := uc.NewIngestionUsecase()
		report, err := usecase.RefreshSource(ctx, source)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptIngestReportDto(report))
	}
}
