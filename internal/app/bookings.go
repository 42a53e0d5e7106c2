package app

import (
	"errors"
	"net/http"

	"cinebook/api"
	"cinebook/internal/booking"
	"cinebook/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	customerID := app.contextGetUserId(r)

	newBooking, err := app.bookingSvc.CreateBooking(r.Context(), customerID, input.ShowtimeId, input.SeatIdList, input.PaymentMethod)
	if err != nil {
		var persistenceErr *booking.PersistenceError

		switch {
		case errors.Is(err, domain.ErrInvalidSelection):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrRecordNotFound), errors.Is(err, domain.ErrUnknownShowtime):
			app.notFoundResponseWithErr(w, r, err)
		case errors.Is(err, domain.ErrSeatsUnavailable):
			logger.Warn("booking conflict: selected seats no longer available", "showtime_id", input.ShowtimeId)
			app.conflictResponse(w, r, err.Error())
		case errors.As(err, &persistenceErr):
			logger.Error("booking persistence failed, seats released", "error", err)
			app.serverErrorResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.releaseHoldAfterBooking(r, newBooking)

	logger.Info("booking created", "booking_id", newBooking.ID, "showtime_id", newBooking.ShowtimeID, "seats", len(newBooking.Seats))

	resp := toBookingResponse(newBooking)

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// releaseHoldAfterBooking drops the session's seat hold once the seats are
// sold. Failures are logged only, the expiring TTL cleans up after us.
func (app *Application) releaseHoldAfterBooking(r *http.Request, newBooking *domain.Booking) {
	sessionID := app.sessionManager.Token(r.Context())

	hold, err := app.getHold(r.Context(), sessionID)
	if err != nil || hold.ShowtimeID != newBooking.ShowtimeID {
		return
	}

	pipe := app.redis.TxPipeline()

	for _, seatID := range hold.SeatIDs {
		pipe.Del(r.Context(), seatLockKey(hold.ShowtimeID, seatID))
		pipe.SRem(r.Context(), seatSetKey(hold.ShowtimeID), seatID)
	}

	pipe.Del(r.Context(), holdSessionKey(sessionID))

	_, err = pipe.Exec(r.Context())
	if err != nil {
		app.contextGetLogger(r).Error("failed to release seat hold after booking", "error", err)
	}
}

func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	bookingID, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userBooking, err := app.bookingSvc.Booking(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if userBooking.CustomerID != app.contextGetUserId(r) {
		logger.Warn("cancellation attempt for a booking owned by another user", "booking_id", bookingID)
		app.notFoundResponse(w, r)
		return
	}

	err = app.bookingSvc.CancelBooking(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrAlreadyCancelled):
			app.conflictResponse(w, r, err.Error())
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("booking cancelled", "booking_id", bookingID)

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetBookingByIdHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	userBooking, err := app.bookingSvc.Booking(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if userBooking.CustomerID != app.contextGetUserId(r) {
		app.notFoundResponse(w, r)
		return
	}

	resp := toBookingResponse(userBooking)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingsOfUserHandler(w http.ResponseWriter, r *http.Request) {
	pagination := domain.Pagination{
		Page:     app.readIntQuery(r, "page", DefaultPage),
		PageSize: app.readIntQuery(r, "pageSize", DefaultPageSize),
	}

	if pagination.Page < 1 {
		pagination.Page = DefaultPage
	}
	if pagination.PageSize < 1 || pagination.PageSize > MaxPageSize {
		pagination.PageSize = DefaultPageSize
	}

	customerID := app.contextGetUserId(r)

	bookings, metadata, err := app.bookingSvc.Bookings(r.Context(), customerID, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.UserBookingsResponse{
		Bookings: make([]api.BookingResponse, len(bookings)),
		Metadata: toApiMetadata(metadata),
	}

	for i := range bookings {
		resp.Bookings[i] = toBookingResponse(&bookings[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toBookingResponse(b *domain.Booking) api.BookingResponse {
	seats := make([]api.BookingSeat, len(b.Seats))

	for i, s := range b.Seats {
		seats[i] = api.BookingSeat{
			SeatId:   s.SeatID,
			Label:    s.Label,
			Category: string(s.Category),
			Price:    s.Price,
		}
	}

	return api.BookingResponse{
		Id:            b.ID,
		CustomerId:    b.CustomerID,
		ShowtimeId:    b.ShowtimeID,
		Seats:         seats,
		TotalPrice:    b.TotalPrice,
		BookingDate:   b.BookingDate,
		Status:        string(b.Status),
		PaymentMethod: b.PaymentMethod,
		TransactionId: b.TransactionID,
	}
}

func toApiMetadata(metadata *domain.Metadata) api.Metadata {
	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		PageSize:     metadata.PageSize,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		TotalRecords: metadata.TotalRecords,
	}
}
