package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"

	"cinebook/api"
	"cinebook/internal/domain"
	"cinebook/internal/pricing"
)

// Redis Lua script to clean up expired seat locks and return currently valid locked seat IDs.
var filterValidLockSeats = redis.NewScript(`
	local setKey = KEYS[1]
	local showtimeId = ARGV[1]
	local cursor = "0"
	local batchSize = 100
	local expiredSeats = {}
	local validSeats = {}

	repeat
		local result = redis.call("SSCAN", setKey, cursor, "COUNT", batchSize)
		cursor = result[1]
		local seatIds = result[2]

		for _, seatId in ipairs(seatIds) do
			local lockKey = "seat_lock:" .. showtimeId .. ":" .. seatId
			if redis.call("EXISTS", lockKey) == 0 then
				table.insert(expiredSeats, seatId)
			else
				table.insert(validSeats, seatId)
			end
		end
	until cursor == "0"

	if #expiredSeats > 0 then
		redis.call("SREM", setKey, unpack(expiredSeats))
	end

	return validSeats
`)

func (app *Application) GetSeatMapByShowtime(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeID, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetByID(r.Context(), showtimeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, err := app.inventory.Seats(r.Context(), showtimeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownShowtime):
			logger.Warn("seat map not found for showtime", "showtime_id", showtimeID)
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	heldSeats, err := app.heldSeatIds(r.Context(), showtimeID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := toSeatMapResponse(showtime, seats, heldSeats)

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// heldSeatIds prunes expired seat locks and returns the seats still held
// by an active session.
func (app *Application) heldSeatIds(ctx context.Context, showtimeID int) (map[int]bool, error) {
	cmd := filterValidLockSeats.Run(ctx, app.redis, []string{seatSetKey(showtimeID)}, showtimeID)
	lockedSeatIds, err := cmd.Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to run filterValidLockSeats script: %w", err)
	}

	heldSeats := make(map[int]bool, len(lockedSeatIds))
	for _, seatId := range lockedSeatIds {
		heldSeats[int(seatId)] = true
	}

	return heldSeats, nil
}

func toSeatMapResponse(showtime *domain.Showtime, seats []domain.ShowtimeSeat, heldSeats map[int]bool) api.SeatMapResponse {
	return api.SeatMapResponse{
		ShowtimeId: showtime.ID,
		MovieTitle: showtime.MovieTitle,
		ScreenName: showtime.ScreenName,
		StartTime:  showtime.StartTime,
		BasePrice:  showtime.BasePrice,
		SeatRows:   toSeatRows(showtime, seats, heldSeats),
	}
}

func toSeatRows(showtime *domain.Showtime, seats []domain.ShowtimeSeat, heldSeats map[int]bool) []api.SeatRow {
	// Seats are pre-sorted by Row,Column (ascending).
	// This allows us to process them in a single pass without additional sorting or mapping.

	var seatRows []api.SeatRow
	currentRow := api.SeatRow{Row: seats[0].Row}

	for _, v := range seats {
		if v.Row != currentRow.Row {
			seatRows = append(seatRows, currentRow)
			currentRow = api.SeatRow{Row: v.Row}
		}

		status := v.Status
		if status == domain.SeatAvailable && heldSeats[v.ID] {
			status = domain.SeatHeld
		}

		currentRow.Seats = append(currentRow.Seats, api.Seat{
			Id:        v.ID,
			Label:     v.Label,
			Row:       v.Row,
			Column:    v.Col,
			Category:  string(v.Category),
			Status:    string(status),
			Price:     pricing.Price(showtime.BasePrice, v.Category, showtime.StartTime),
			Available: status == domain.SeatAvailable,
		})
	}

	seatRows = append(seatRows, currentRow)

	return seatRows
}
