package auth

import (
	"errors"
	"net/http"

	"trainway/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
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

// Signup handles POST /api/v1/auth/signup
func (c *Controller) Signup(ctx *gin.Context) {
	var req SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	resp, err := c.service.Signup(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			response.Error(ctx, http.StatusBadRequest, "Email already registered")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to register user")
		return
	}

	response.OK(ctx, http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    resp.User,
		"token":   resp.Token,
	})
}

// Login handles POST /api/v1/auth/login
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(ctx, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		response.Error(ctx, http.StatusInternalServerError, "Failed to login")
		return
	}

	response.OK(ctx, http.StatusOK, gin.H{
		"user":  resp.User,
		"token": resp.Token,
	})
}

// GetMe handles GET /api/v1/auth/me
func (c *Controller) GetMe(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	email, _ := ctx.Get("user_email")

	response.OK(ctx, http.StatusOK, gin.H{
		"user": gin.H{
			"id":    userID,
			"email": email,
		},
	})
}
