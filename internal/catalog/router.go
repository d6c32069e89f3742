package catalog

import (
	"github.com/gin-gonic/gin"

	"trainway/internal/shared/config"
	"trainway/internal/shared/middleware"
)

// Router handles catalog browse routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new catalog router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all catalog routes. Browsing is public, but a token
// sent along still attaches the user identity to the request.
func (catalogRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	browse := rg.Group("")
	browse.Use(middleware.OptionalAuthWithConfig(catalogRouter.config))
	{
		trains := browse.Group("/trains")
		{
			trains.GET("", catalogRouter.controller.ListTrains)
			trains.GET("/:id/schedules", catalogRouter.controller.ListSchedulesByTrain)
		}

		browse.GET("/schedules", catalogRouter.controller.SearchSchedules)
	}
}
