package domain

import "errors"

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrRecordNotFound    = errors.New("record not found")
	ErrEditConflict      = errors.New("edit conflict")
	ErrInvalidSelection  = errors.New("seat selection must contain between 1 and 10 seats")
	ErrSeatsUnavailable  = errors.New("one or more of the selected seats are not available")
	ErrAlreadyCancelled  = errors.New("booking is already cancelled")
	ErrSeatAlreadyHeld   = errors.New("seat(s) are already held by another session")
	ErrHoldNotFound      = errors.New("no seat hold found for the current session")
	ErrUnknownShowtime   = errors.New("showtime does not exist")
)
