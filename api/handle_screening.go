package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clearlist/screener-backend/dto"
	"github.com/clearlist/screener-backend/pure_utils"
	"github.com/clearlist/screener-backend/usecases"
)

func handleScreen(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var queryDto dto.ScreeningQueryDto
		if err := c.ShouldBindJSON(&queryDto); err != nil {
			c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})
			return
		}

		usecase := uc.NewScreeningUsecase()
		result, err := usecase.Screen(ctx, dto.AdaptScreeningQuery(queryDto))
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptScreeningResultDto(result))
	}
}

func handleScreenBatch(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var batchDto dto.BatchScreeningRequestDto
		if err := c.ShouldBindJSON(&batchDto); err != nil {
			c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})
			return
		}

		queries := pure_utils.Map(batchDto.Queries, dto.AdaptScreeningQuery)

		usecase := uc.NewScreeningUsecase()
		result, err := usecase.ScreenBatch(ctx, queries)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, dto.AdaptBatchResultDto(result))
	}
}

func handleListScreeningEvents(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var params struct {
			Limit int `form:"limit"`
		}
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})
			return
		}

		usecase := uc.NewAuditUsecase()
		events, err := usecase.ListScreeningEvents(ctx, params.Limit)
		if presentError(ctx, c, err) {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"events": pure_utils.Map(events, dto.AdaptScreeningEventDto),
		})
	}
}
