package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearlist/screener-backend/dto"
	"github.com/clearlist/screener-backend/usecases"
)

func handleLivenessProbe(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// handleReadinessProbe reports not-ready until the first snapshot publishes.
func handleReadinessProbe(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		usecase := uc.NewHealthUsecase()
		freshness, err := usecase.IndexFreshness()
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptIndexFreshnessDto(freshness))
	}
}
