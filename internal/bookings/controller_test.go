package bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) BookTicket(ctx context.Context, req *BookTicketRequest) (*BookingDetails, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingDetails), args.Error(1)
}

func (m *mockService) GetBookingDetails(ctx context.Context, bookingID uuid.UUID) (*BookingDetails, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingDetails), args.Error(1)
}

func (m *mockService) GetPNRStatus(ctx context.Context, pnr string) (*PNRStatus, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PNRStatus), args.Error(1)
}

func (m *mockService) GetUserPayments(ctx context.Context, userID uuid.UUID) ([]PaymentLedgerEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PaymentLedgerEntry), args.Error(1)
}

func (m *mockService) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]BookingDetails, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingDetails), args.Error(1)
}

func setupTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	controller := NewController(svc)

	engine.POST("/bookings", controller.BookTicket)
	engine.GET("/pnr/:pnr", controller.GetPNRStatus)
	engine.GET("/payments/user/:userId", controller.GetUserPayments)
	return engine
}

func postBooking(t *testing.T, engine *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestBookTicketEndpointSuccess(t *testing.T) {
	svc := new(mockService)
	engine := setupTestRouter(svc)

	svc.On("BookTicket", mock.Anything, mock.Anything).Return(sampleDetails(), nil)

	w := postBooking(t, engine, validRequest())
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])

	booking, ok := body["booking"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "PNR123456", booking["pnr"])
	assert.Equal(t, "A1", booking["seat_number"])
}

func TestBookTicketEndpointErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"schedule missing", ErrScheduleNotFound, http.StatusNotFound, "Schedule not found"},
		{"user missing", ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"sold out", ErrSeatsUnavailable, http.StatusBadRequest, "No seats available"},
		{"departed", ErrScheduleDeparted, http.StatusBadRequest, "Schedule has already departed"},
		{"infrastructure", ErrTransactionFailed, http.StatusInternalServerError, "booking failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			engine := setupTestRouter(svc)
			svc.On("BookTicket", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := postBooking(t, engine, validRequest())
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestBookTicketEndpointValidation(t *testing.T) {
	svc := new(mockService)
	engine := setupTestRouter(svc)

	w := postBooking(t, engine, map[string]string{"userId": "someone"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "BookTicket")
}

func TestGetPNRStatusEndpoint(t *testing.T) {
	svc := new(mockService)
	engine := setupTestRouter(svc)

	svc.On("GetPNRStatus", mock.Anything, "PNR123456").Return(&PNRStatus{
		PNR:             "PNR123456",
		PassengerName:   "Asha Verma",
		TrainName:       "Coastal Express",
		SeatNumber:      "A1",
		BoardingStation: "Central",
		Status:          BookingStatusConfirmed,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/pnr/PNR123456", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	status, ok := body["pnr_status"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Asha Verma", status["passenger_name"])
	assert.Equal(t, "Central", status["boarding_station"])
}

func TestGetPNRStatusEndpointNotFound(t *testing.T) {
	svc := new(mockService)
	engine := setupTestRouter(svc)

	svc.On("GetPNRStatus", mock.Anything, "PNR000000").Return(nil, ErrPNRNotFound)

	req := httptest.NewRequest(http.MethodGet, "/pnr/PNR000000", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetUserPaymentsEndpoint(t *testing.T) {
	svc := new(mockService)
	engine := setupTestRouter(svc)

	userID := uuid.New()
	svc.On("GetUserPayments", mock.Anything, userID).Return([]PaymentLedgerEntry{
		{TransactionID: "TXN000002", Amount: 31.00, Status: PaymentStatusCompleted},
		{TransactionID: "TXN000001", Amount: 24.50, Status: PaymentStatusCompleted},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/payments/user/"+userID.String(), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["count"])
}

func TestGetUserPaymentsEndpointBadID(t *testing.T) {
	svc := new(mockService)
	engine := setupTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/payments/user/banana", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetUserPayments")
}
