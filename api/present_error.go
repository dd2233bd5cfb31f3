package api

import (
	"context"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/clearlist/screener-backend/dto"
	"github.com/clearlist/screener-backend/models"
	"github.com/clearlist/screener-backend/utils"
)

// presentError translates a domain error into the matching HTTP response.
// Returns true when the error was present and handled, so handlers read
// `if presentError(ctx, c, err) { return }`.
func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, models.ErrNameTooShort):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.NameTooShort})
	case errors.Is(err, models.ErrNameTooLong):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.NameTooLong})
	case errors.Is(err, models.ErrInvalidDobFormat), errors.Is(err, models.ErrFutureDob):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.InvalidBirthDate})
	case errors.Is(err, models.ErrEmptyBatch):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.EmptyBatch})
	case errors.Is(err, models.ErrBatchTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.BatchTooLarge})
	case errors.Is(err, models.ErrFeedOversized):
		c.JSON(http.StatusRequestEntityTooLarge, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ErrUnknownSource):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.UnknownSource})
	case errors.Is(err, models.ErrNoSnapshot):
		c.JSON(http.StatusServiceUnavailable, dto.APIErrorResponse{Message: err.Error(), ErrorCode: dto.IndexNotReady})
	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.UnprocessableEntityError), errors.Is(err, models.FeedParseError),
		errors.Is(err, models.EmptyIndexError):
		c.JSON(http.StatusUnprocessableEntity, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, dto.APIErrorResponse{Message: err.Error()})
	case errors.Is(err, models.ConflictError):
		c.JSON(http.StatusConflict, dto.APIErrorResponse{Message: err.Error()})
	default:
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "unexpected error", "error", err.Error())
		c.JSON(http.StatusInternalServerError, dto.APIErrorResponse{Message: "internal error"})
	}

	return true
}
