package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"cinebook/api"
	"cinebook/internal/booking"
	"cinebook/internal/domain"
	"cinebook/internal/mocks"
)

type BookingsTestSuite struct {
	suite.Suite
	app         *Application
	bookingSvc  *mocks.MockBookingService
	redisClient *mocks.MockRedisClient
}

func (s *BookingsTestSuite) SetupTest() {
	s.bookingSvc = new(mocks.MockBookingService)
	s.redisClient = new(mocks.MockRedisClient)

	s.app = newTestApplication(func(a *Application) {
		a.bookingSvc = s.bookingSvc
		a.redis = s.redisClient
	})
}

func TestBookingsSuite(t *testing.T) {
	suite.Run(t, new(BookingsTestSuite))
}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:         7,
		CustomerID: 42,
		ShowtimeID: 1,
		Seats: []domain.BookingSeat{
			{SeatID: 3, Label: "A3", Category: domain.SeatRegular, Price: decimal.RequireFromString("14.50")},
			{SeatID: 4, Label: "A4", Category: domain.SeatVIP, Price: decimal.RequireFromString("29.00")},
		},
		TotalPrice:  decimal.RequireFromString("43.50"),
		BookingDate: time.Date(2025, time.June, 7, 19, 30, 0, 0, time.UTC),
		Status:      domain.BookingConfirmed,
	}
}

func (s *BookingsTestSuite) TestCreateBookingHandler() {
	tests := []struct {
		name           string
		body           any
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should fail when seat list is empty",
			body:           api.CreateBookingRequest{ShowtimeId: 1, SeatIdList: []int{}},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:           "should fail when seat list exceeds the per booking limit",
			body:           api.CreateBookingRequest{ShowtimeId: 1, SeatIdList: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at most 10",
		},
		{
			name:           "should fail when payment method is unknown",
			body:           api.CreateBookingRequest{ShowtimeId: 1, SeatIdList: []int{3}, PaymentMethod: "BARTER"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be one of CREDIT_CARD, DEBIT_CARD, CASH or WALLET",
		},
		{
			name: "should fail when showtime does not exist",
			body: api.CreateBookingRequest{ShowtimeId: 999, SeatIdList: []int{3, 4}},
			setupMocks: func() {
				s.bookingSvc.On("CreateBooking", mock.Anything, 42, 999, []int{3, 4}, "").
					Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name: "should fail with conflict when seats are no longer available",
			body: api.CreateBookingRequest{ShowtimeId: 1, SeatIdList: []int{3, 4}},
			setupMocks: func() {
				s.bookingSvc.On("CreateBooking", mock.Anything, 42, 1, []int{3, 4}, "").
					Return(nil, domain.ErrSeatsUnavailable)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrSeatsUnavailable.Error(),
		},
		{
			name: "should fail with server error when persistence fails after compensation",
			body: api.CreateBookingRequest{ShowtimeId: 1, SeatIdList: []int{3, 4}},
			setupMocks: func() {
				s.bookingSvc.On("CreateBooking", mock.Anything, 42, 1, []int{3, 4}, "").
					Return(nil, &booking.PersistenceError{Cause: fmt.Errorf("connection reset")})
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name: "should create booking with valid input",
			body: api.CreateBookingRequest{ShowtimeId: 1, SeatIdList: []int{3, 4}},
			setupMocks: func() {
				s.bookingSvc.On("CreateBooking", mock.Anything, 42, 1, []int{3, 4}, "").
					Return(sampleBooking(), nil)
				s.redisClient.On("Get", mock.Anything, mock.Anything).
					Return(redis.NewStringResult("", redis.Nil))
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.bookingSvc.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/bookings", tt.body)
			r = setupTestSession(s.T(), s.app, r, 42)
			r = setAuthenticatedUser(r, 42)

			s.app.CreateBookingHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantStatus == http.StatusCreated {
				var resp api.BookingResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Equal(7, resp.Id)
				s.Equal(42, resp.CustomerId)
				s.Equal(string(domain.BookingConfirmed), resp.Status)
				s.Len(resp.Seats, 2)
				s.True(resp.TotalPrice.Equal(decimal.RequireFromString("43.50")))
			}
		})
	}
}

func (s *BookingsTestSuite) TestCancelBookingHandler() {
	tests := []struct {
		name           string
		bookingID      string
		userID         int
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should fail when booking ID is not a positive integer",
			bookingID:      "abc",
			userID:         42,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid bookingId parameter",
		},
		{
			name:      "should fail when booking does not exist",
			bookingID: "999",
			userID:    42,
			setupMocks: func() {
				s.bookingSvc.On("Booking", mock.Anything, 999).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:      "should fail when booking belongs to another user",
			bookingID: "7",
			userID:    99,
			setupMocks: func() {
				s.bookingSvc.On("Booking", mock.Anything, 7).Return(sampleBooking(), nil)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:      "should fail with conflict when booking is already cancelled",
			bookingID: "7",
			userID:    42,
			setupMocks: func() {
				s.bookingSvc.On("Booking", mock.Anything, 7).Return(sampleBooking(), nil)
				s.bookingSvc.On("CancelBooking", mock.Anything, 7).Return(domain.ErrAlreadyCancelled)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrAlreadyCancelled.Error(),
		},
		{
			name:      "should fail with conflict when another request changed the booking concurrently",
			bookingID: "7",
			userID:    42,
			setupMocks: func() {
				s.bookingSvc.On("Booking", mock.Anything, 7).Return(sampleBooking(), nil)
				s.bookingSvc.On("CancelBooking", mock.Anything, 7).Return(domain.ErrEditConflict)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: ErrEditConflict,
		},
		{
			name:      "should cancel booking owned by the user",
			bookingID: "7",
			userID:    42,
			setupMocks: func() {
				s.bookingSvc.On("Booking", mock.Anything, 7).Return(sampleBooking(), nil)
				s.bookingSvc.On("CancelBooking", mock.Anything, 7).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.bookingSvc.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodDelete, "/bookings/"+tt.bookingID, nil)
			r = withURLParam(r, "bookingId", tt.bookingID)
			r = setAuthenticatedUser(r, tt.userID)

			s.app.CancelBookingHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})
		})
	}
}

func (s *BookingsTestSuite) TestGetBookingsOfUserHandler() {
	tests := []struct {
		name           string
		url            string
		setupMocks     func()
		wantStatus     int
		wantBookings   int
		wantErrMessage string
	}{
		{
			name: "should fall back to defaults when pagination params are invalid",
			url:  "/bookings?page=-1&pageSize=9000",
			setupMocks: func() {
				s.bookingSvc.On("Bookings", mock.Anything, 42, domain.Pagination{Page: DefaultPage, PageSize: DefaultPageSize}).
					Return([]domain.Booking{}, &domain.Metadata{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "should fail when the store errors",
			url:  "/bookings",
			setupMocks: func() {
				s.bookingSvc.On("Bookings", mock.Anything, 42, mock.Anything).
					Return(nil, nil, fmt.Errorf("database error"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name: "should return the user's bookings",
			url:  "/bookings?page=2&pageSize=1",
			setupMocks: func() {
				s.bookingSvc.On("Bookings", mock.Anything, 42, domain.Pagination{Page: 2, PageSize: 1}).
					Return([]domain.Booking{*sampleBooking()}, domain.NewMetadata(3, 2, 1), nil)
			},
			wantStatus:   http.StatusOK,
			wantBookings: 1,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.bookingSvc.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, tt.url, nil)
			r = setAuthenticatedUser(r, 42)

			s.app.GetBookingsOfUserHandler(w, r)

			s.Equal(tt.wantStatus, w.Code)

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantStatus == http.StatusOK && tt.wantBookings > 0 {
				var resp api.UserBookingsResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Len(resp.Bookings, tt.wantBookings)
				s.Equal(3, resp.Metadata.TotalRecords)
				s.Equal(3, resp.Metadata.LastPage)
			}
		})
	}
}
