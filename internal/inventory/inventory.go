// Package inventory is the authoritative tracker of per-showtime seat
// availability. All seat-status transitions for a showtime go through a
// single critical section, so a set of seats moves from AVAILABLE to SOLD
// all-or-nothing even under concurrent requests.
package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cinebook/internal/domain"
	"github.com/google/uuid"
)

// MaxSeatsPerBooking caps the size of a single reservation.
const MaxSeatsPerBooking = 10

// ReservationToken references a seat set that has been committed to SOLD.
type ReservationToken struct {
	ID         string
	ShowtimeID int
	Seats      []domain.ShowtimeSeat
	CreatedAt  time.Time
}

type Inventory struct {
	seatRepo domain.SeatRepository

	mu        sync.Mutex
	showtimes map[int]*showtimeState
}

// showtimeState guards the seat map of one showtime. Locking is per
// showtime, so contention on one screening never blocks another.
type showtimeState struct {
	mu    sync.Mutex
	seats map[int]*domain.ShowtimeSeat
	order []int
}

func New(seatRepo domain.SeatRepository) *Inventory {
	return &Inventory{
		seatRepo:  seatRepo,
		showtimes: make(map[int]*showtimeState),
	}
}

// AvailableSeats returns the seats currently AVAILABLE for the showtime, in
// screen order.
func (inv *Inventory) AvailableSeats(ctx context.Context, showtimeID int) ([]domain.ShowtimeSeat, error) {
	state, err := inv.state(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	available := make([]domain.ShowtimeSeat, 0, len(state.order))
	for _, id := range state.order {
		if seat := state.seats[id]; seat.Available() {
			available = append(available, *seat)
		}
	}

	return available, nil
}

// Seats returns every seat of the showtime with its current status, in
// screen order.
func (inv *Inventory) Seats(ctx context.Context, showtimeID int) ([]domain.ShowtimeSeat, error) {
	state, err := inv.state(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	seats := make([]domain.ShowtimeSeat, 0, len(state.order))
	for _, id := range state.order {
		seats = append(seats, *state.seats[id])
	}

	return seats, nil
}

// Reserve transitions the requested seats from AVAILABLE to SOLD as a single
// atomic operation. It fails with domain.ErrInvalidSelection when the request
// is empty or oversized, and with domain.ErrSeatsUnavailable when any seat is
// not AVAILABLE; in both cases no seat state changes. The durable status
// update happens inside the critical section, before the in-memory state is
// touched, so a persistence failure leaves the inventory unchanged.
func (inv *Inventory) Reserve(ctx context.Context, showtimeID int, seatIDs []int) (*ReservationToken, error) {
	if len(seatIDs) == 0 || len(seatIDs) > MaxSeatsPerBooking {
		return nil, domain.ErrInvalidSelection
	}

	state, err := inv.state(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	reserved := make([]domain.ShowtimeSeat, 0, len(seatIDs))
	seen := make(map[int]bool, len(seatIDs))

	for _, id := range seatIDs {
		if seen[id] {
			return nil, domain.ErrInvalidSelection
		}
		seen[id] = true

		seat, ok := state.seats[id]
		if !ok || !seat.Available() {
			return nil, domain.ErrSeatsUnavailable
		}

		reserved = append(reserved, *seat)
	}

	err = inv.seatRepo.UpdateStatuses(ctx, showtimeID, seatIDs, domain.SeatSold)
	if err != nil {
		return nil, fmt.Errorf("failed to persist seat reservation: %w", err)
	}

	for i := range reserved {
		reserved[i].Status = domain.SeatSold
		state.seats[reserved[i].ID].Status = domain.SeatSold
	}

	token := &ReservationToken{
		ID:         uuid.New().String(),
		ShowtimeID: showtimeID,
		Seats:      reserved,
		CreatedAt:  time.Now(),
	}

	return token, nil
}

// Release transitions the given seats back to AVAILABLE. Releasing a seat
// that is already AVAILABLE is a no-op, so the operation is idempotent.
func (inv *Inventory) Release(ctx context.Context, showtimeID int, seatIDs []int) error {
	state, err := inv.state(ctx, showtimeID)
	if err != nil {
		return err
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	toRelease := make([]int, 0, len(seatIDs))
	for _, id := range seatIDs {
		seat, ok := state.seats[id]
		if !ok || seat.Available() {
			continue
		}

		toRelease = append(toRelease, id)
	}

	if len(toRelease) == 0 {
		return nil
	}

	err = inv.seatRepo.UpdateStatuses(ctx, showtimeID, toRelease, domain.SeatAvailable)
	if err != nil {
		return fmt.Errorf("failed to persist seat release: %w", err)
	}

	for _, id := range toRelease {
		state.seats[id].Status = domain.SeatAvailable
	}

	return nil
}

// state returns the cached seat state for the showtime, loading it from the
// seat repository on first use.
func (inv *Inventory) state(ctx context.Context, showtimeID int) (*showtimeState, error) {
	inv.mu.Lock()
	state, ok := inv.showtimes[showtimeID]
	if !ok {
		state = &showtimeState{}
		inv.showtimes[showtimeID] = state
	}
	inv.mu.Unlock()

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.seats != nil {
		return state, nil
	}

	seats, err := inv.seatRepo.GetSeatsByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	if len(seats) == 0 {
		return nil, domain.ErrUnknownShowtime
	}

	state.seats = make(map[int]*domain.ShowtimeSeat, len(seats))
	state.order = make([]int, 0, len(seats))

	for i := range seats {
		seat := seats[i]
		state.seats[seat.ID] = &seat
		state.order = append(state.order, seat.ID)
	}

	return state, nil
}
