package bookings

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"trainway/internal/shared/utils/response"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// BookTicket handles POST /api/v1/bookings
func (c *Controller) BookTicket(ctx *gin.Context) {
	var req BookTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	booking, err := c.service.BookTicket(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrScheduleNotFound):
			response.Error(ctx, http.StatusNotFound, "Schedule not found")
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusNotFound, "User not found")
		case errors.Is(err, ErrSeatsUnavailable):
			response.Error(ctx, http.StatusBadRequest, "No seats available")
		case errors.Is(err, ErrScheduleDeparted):
			response.Error(ctx, http.StatusBadRequest, "Schedule has already departed")
		default:
			response.Error(ctx, http.StatusInternalServerError, "booking failed")
		}
		return
	}

	response.OK(ctx, http.StatusOK, gin.H{
		"message": "Ticket booked successfully",
		"booking": booking,
	})
}

// GetPNRStatus handles GET /api/v1/pnr/:pnr
func (c *Controller) GetPNRStatus(ctx *gin.Context) {
	pnr := ctx.Param("pnr")

	status, err := c.service.GetPNRStatus(ctx.Request.Context(), pnr)
	if err != nil {
		if errors.Is(err, ErrPNRNotFound) {
			response.Error(ctx, http.StatusNotFound, "PNR not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to fetch PNR status")
		return
	}

	response.OK(ctx, http.StatusOK, gin.H{
		"pnr_status": status,
	})
}

// GetUserPayments handles GET /api/v1/payments/user/:userId
func (c *Controller) GetUserPayments(ctx *gin.Context) {
	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid user ID")
		return
	}

	payments, err := c.service.GetUserPayments(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to fetch payments")
		return
	}

	response.OK(ctx, http.StatusOK, gin.H{
		"payments": payments,
		"count":    len(payments),
	})
}

// GetUserBookings handles GET /api/v1/users/bookings for the authenticated
// user.
func (c *Controller) GetUserBookings(ctx *gin.Context) {
	userID, ok := authenticatedUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	bookings, err := c.service.GetUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to fetch bookings")
		return
	}

	response.OK(ctx, http.StatusOK, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// DownloadTicket handles GET /api/v1/bookings/:id/ticket and streams the
// e-ticket as a PDF.
func (c *Controller) DownloadTicket(ctx *gin.Context) {
	bookingID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	userID, ok := authenticatedUserID(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	details, err := c.service.GetBookingDetails(ctx.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.Error(ctx, http.StatusNotFound, "Booking not found")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to fetch booking")
		return
	}

	// Tickets are only visible to the traveller who booked them.
	if details.UserID != userID {
		response.Error(ctx, http.StatusNotFound, "Booking not found")
		return
	}

	pdf, err := renderTicketPDF(details)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to render ticket")
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=ticket-%s.pdf", details.PNR))
	ctx.Data(http.StatusOK, "application/pdf", pdf)
}

func authenticatedUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	idStr, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
