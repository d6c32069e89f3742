package bookings

import (
	"github.com/gin-gonic/gin"

	"trainway/internal/shared/config"
	"trainway/internal/shared/middleware"
)

// Router handles booking-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new bookings router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all booking routes. PNR lookup is public; everything
// else needs a token.
func (bookingRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	rg.GET("/pnr/:pnr",
		middleware.OptionalAuthWithConfig(bookingRouter.config),
		bookingRouter.controller.GetPNRStatus)

	protected := rg.Group("")
	protected.Use(middleware.JWTAuthWithConfig(bookingRouter.config))
	{
		protected.POST("/bookings", bookingRouter.controller.BookTicket)
		protected.GET("/bookings/:id/ticket", bookingRouter.controller.DownloadTicket)
		protected.GET("/payments/user/:userId", bookingRouter.controller.GetUserPayments)
		protected.GET("/users/bookings", bookingRouter.controller.GetUserBookings)
	}
}
