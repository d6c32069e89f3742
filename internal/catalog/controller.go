package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trainway/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListTrains handles GET /api/v1/trains
func (c *Controller) ListTrains(ctx *gin.Context) {
	trains, err := c.service.ListTrains(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to fetch trains")
		return
	}

	response.OK(ctx, http.StatusOK, gin.H{
		"trains": trains,
		"count":  len(trains),
	})
}

// ListSchedulesByTrain handles GET /api/v1/trains/:id/schedules
func (c *Controller) ListSchedulesByTrain(ctx *gin.Context) {
	trainID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid train ID")
		return
	}

	schedules, err := c.service.ListSchedulesByTrain(ctx.Request.Context(), trainID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to fetch schedules")
		return
	}

	response.OK(ctx, http.StatusOK, gin.H{
		"schedules": schedules,
		"count":     len(schedules),
	})
}

// SearchSchedules handles GET /api/v1/schedules?date=YYYY-MM-DD&from=X&to=Y
func (c *Controller) SearchSchedules(ctx *gin.Context) {
	var query ScheduleSearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.Error(ctx, http.StatusBadRequest, "date query parameter is required")
		return
	}

	schedules, err := c.service.SearchSchedules(ctx.Request.Context(), query)
	if err != nil {
		if errors.Is(err, ErrInvalidDate) {
			response.Error(ctx, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to search schedules")
		return
	}

	response.OK(ctx, http.StatusOK, gin.H{
		"schedules": schedules,
		"count":     len(schedules),
	})
}
