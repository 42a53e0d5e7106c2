// Package api defines the request and response types of the HTTP surface.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int       `json:"version"`
}

type CreateMovieRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0,max=600"`
}

type MovieResponse struct {
	Id              int       `json:"id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata Metadata        `json:"metadata"`
}

type Seat struct {
	Id        int             `json:"id"`
	Label     string          `json:"label"`
	Row       int             `json:"row"`
	Column    int             `json:"column"`
	Category  string          `json:"category"`
	Status    string          `json:"status"`
	Price     decimal.Decimal `json:"price"`
	Available bool            `json:"available"`
}

type SeatRow struct {
	Row   int    `json:"row"`
	Seats []Seat `json:"seats"`
}

type SeatMapResponse struct {
	ShowtimeId int             `json:"showtimeId"`
	MovieTitle string          `json:"movieTitle"`
	ScreenName string          `json:"screenName"`
	StartTime  time.Time       `json:"startTime"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	SeatRows   []SeatRow       `json:"seatRows"`
}

type CreateHoldRequest struct {
	SeatIdList []int `json:"seatIdList" validate:"required,min=1,max=10,dive,gt=0"`
}

type HoldResponse struct {
	ShowtimeId  int   `json:"showtimeId"`
	SeatIdList  []int `json:"seatIdList"`
	HoldSeconds int   `json:"holdSeconds"`
}

type CreateBookingRequest struct {
	ShowtimeId    int    `json:"showtimeId" validate:"required,gt=0"`
	SeatIdList    []int  `json:"seatIdList" validate:"required,min=1,max=10,dive,gt=0"`
	PaymentMethod string `json:"paymentMethod,omitempty" validate:"omitempty,payment_method"`
}

type BookingSeat struct {
	SeatId   int             `json:"seatId"`
	Label    string          `json:"label"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

type BookingResponse struct {
	Id            int             `json:"id"`
	CustomerId    int             `json:"customerId"`
	ShowtimeId    int             `json:"showtimeId"`
	Seats         []BookingSeat   `json:"seats"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	BookingDate   time.Time       `json:"bookingDate"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	TransactionId string          `json:"transactionId,omitempty"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	PageSize     int `json:"pageSize"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	TotalRecords int `json:"totalRecords"`
}

type UserBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Metadata Metadata          `json:"metadata"`
}

type RevenueReportResponse struct {
	TotalIncome decimal.Decimal `json:"totalIncome"`
	From        *time.Time      `json:"from,omitempty"`
	To          *time.Time      `json:"to,omitempty"`
}
