package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"cinebook/api"
	"cinebook/internal/domain"
)

const seatHoldTTL = 10 * time.Minute

var lockSeatsScript = redis.NewScript(`
    -- KEYS = seat lock keys (e.g., seat_lock:123:1, seat_lock:123:2 etc.)
    -- ARGV = [sessionID, ttl]

    for i=1, #KEYS do
        if redis.call("EXISTS", KEYS[i]) == 1 then
            return {err = "seat already held"} -- Return an error indicator
        end
    end

    for i=1, #KEYS do
        redis.call("SET", KEYS[i], ARGV[1], "EX", ARGV[2])
    end

    return "OK"
`)

// seatHold is the session-scoped hold record stored in Redis.
type seatHold struct {
	ShowtimeID int       `json:"showtimeId"`
	SeatIDs    []int     `json:"seatIds"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (app *Application) CreateHoldHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeID, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CreateHoldRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	sessionID := app.sessionManager.Token(r.Context())

	existing, err := app.redis.Exists(r.Context(), holdSessionKey(sessionID)).Result()
	if err != nil {
		logger.Error("failed to check for existing hold in redis", "error", err)
		app.serverErrorResponse(w, r, err)
		return
	}

	if existing > 0 {
		logger.Warn("hold creation attempt rejected: a hold already exists for this session")
		app.badRequestResponse(w, r, fmt.Errorf("cannot create a new hold while a hold already exists in session"))
		return
	}

	seats, err := app.inventory.Seats(r.Context(), showtimeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownShowtime):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seatsById := make(map[int]domain.ShowtimeSeat, len(seats))
	for _, seat := range seats {
		seatsById[seat.ID] = seat
	}

	for _, seatID := range input.SeatIdList {
		seat, ok := seatsById[seatID]
		if !ok {
			logger.Warn("hold creation failed: requested seat does not exist for the showtime", "seat_id", seatID)
			app.notFoundResponse(w, r)
			return
		}

		if !seat.Available() {
			logger.Warn("hold creation conflict: user selected an already sold seat", "seat_id", seatID)
			app.editConflictResponseWithErr(w, r, fmt.Errorf("some of the selected seats are no longer available"))
			return
		}
	}

	err = app.tryLockSeats(r.Context(), input.SeatIdList, showtimeID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSeatAlreadyHeld):
			logger.Warn("hold creation conflict due to race condition: user selected an already held seat")
			app.editConflictResponseWithErr(w, r, fmt.Errorf("some of the selected seats are already held"))
		default:
			app.serverErrorResponse(w, r, fmt.Errorf("seats couldn't be acquired: %w", err))
		}

		return
	}

	err = app.storeHold(r.Context(), showtimeID, input.SeatIdList, sessionID)
	if err != nil {
		logger.Error("hold creation process failed", "error", err)
		app.serverErrorResponse(w, r, fmt.Errorf("hold couldn't be created: %w", err))
		return
	}

	resp := api.HoldResponse{
		ShowtimeId:  showtimeID,
		SeatIdList:  input.SeatIdList,
		HoldSeconds: int(seatHoldTTL.Seconds()),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ReleaseHoldHandler(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	showtimeID, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	sessionID := app.sessionManager.Token(r.Context())

	hold, err := app.getHold(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHoldNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if hold.ShowtimeID != showtimeID {
		logger.Warn(
			"hold release attempt with mismatched showtime ID in URL",
			"hold_showtime_id", hold.ShowtimeID,
			"url_showtime_id", showtimeID,
		)
		app.notFoundResponse(w, r)
		return
	}

	pipe := app.redis.TxPipeline()

	for _, seatID := range hold.SeatIDs {
		pipe.Del(r.Context(), seatLockKey(showtimeID, seatID))
		pipe.SRem(r.Context(), seatSetKey(showtimeID), seatID)
	}

	pipe.Del(r.Context(), holdSessionKey(sessionID))

	_, err = pipe.Exec(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) tryLockSeats(ctx context.Context, seatIDs []int, showtimeID int, sessionID string) error {
	keys := make([]string, len(seatIDs))
	for i, seatID := range seatIDs {
		keys[i] = seatLockKey(showtimeID, seatID)
	}

	err := lockSeatsScript.Run(ctx, app.redis, keys, sessionID, int(seatHoldTTL.Seconds())).Err()
	if err != nil {
		if redis.HasErrorPrefix(err, "seat already held") {
			return domain.ErrSeatAlreadyHeld
		}

		return err
	}

	return nil
}

func (app *Application) storeHold(ctx context.Context, showtimeID int, seatIDs []int, sessionID string) error {
	hold := seatHold{
		ShowtimeID: showtimeID,
		SeatIDs:    seatIDs,
		CreatedAt:  time.Now(),
	}

	holdBytes, err := json.Marshal(hold)
	if err != nil {
		app.rollbackSeatLocks(ctx, showtimeID, seatIDs)
		return err
	}

	pipe := app.redis.TxPipeline()

	seatIdInterfaces := make([]interface{}, len(seatIDs))
	for i, seatID := range seatIDs {
		seatIdInterfaces[i] = seatID
	}
	pipe.SAdd(ctx, seatSetKey(showtimeID), seatIdInterfaces...)

	pipe.Set(ctx, holdSessionKey(sessionID), holdBytes, seatHoldTTL)

	_, err = pipe.Exec(ctx)
	if err != nil {
		app.rollbackSeatLocks(ctx, showtimeID, seatIDs)
		return err
	}

	return nil
}

func (app *Application) getHold(ctx context.Context, sessionID string) (*seatHold, error) {
	holdBytes, err := app.redis.Get(ctx, holdSessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrHoldNotFound
		}

		return nil, err
	}

	var hold seatHold

	err = json.Unmarshal(holdBytes, &hold)
	if err != nil {
		return nil, err
	}

	return &hold, nil
}

func (app *Application) rollbackSeatLocks(ctx context.Context, showtimeID int, seatIDs []int) {
	lockKeys := make([]string, len(seatIDs))
	seatIDInterfaces := make([]interface{}, len(seatIDs))

	for i, seatID := range seatIDs {
		lockKeys[i] = seatLockKey(showtimeID, seatID)
		seatIDInterfaces[i] = seatID
	}

	pipe := app.redis.TxPipeline()
	pipe.Del(ctx, lockKeys...)
	pipe.SRem(ctx, seatSetKey(showtimeID), seatIDInterfaces...)

	_, err := pipe.Exec(ctx)
	if err != nil {
		app.logger.Error("failed to rollback seat locks", "error", err)
		return
	}
}

// migrateSeatHolds re-binds the seat locks of the old session to the new
// session after a token renewal, so a login does not drop an active hold.
func (app *Application) migrateSeatHolds(ctx context.Context, oldSessionId, newSessionId string) error {
	holdBytes, err := app.redis.Get(ctx, holdSessionKey(oldSessionId)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}

		return fmt.Errorf("failed to get hold for session %s: %w", oldSessionId, err)
	}

	var hold seatHold

	err = json.Unmarshal(holdBytes, &hold)
	if err != nil {
		return fmt.Errorf("failed to unmarshal hold for session %s: %w", oldSessionId, err)
	}

	ttl, err := app.redis.TTL(ctx, holdSessionKey(oldSessionId)).Result()
	if err != nil {
		return fmt.Errorf("failed to get TTL of hold for session %s: %w", oldSessionId, err)
	}

	if ttl <= 0 {
		// Key either doesn't exist (-2) or is persistent (-1), put for safety
		return nil
	}

	lockKeys := make([]string, len(hold.SeatIDs))
	for i, seatID := range hold.SeatIDs {
		lockKeys[i] = seatLockKey(hold.ShowtimeID, seatID)
	}

	err = app.redis.Watch(ctx, func(tx *redis.Tx) error {
		for _, lockKey := range lockKeys {
			sessionId, err := tx.Get(ctx, lockKey).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}

			if sessionId != oldSessionId {
				return fmt.Errorf("seat lock doesn't belong to current session")
			}
		}

		pipe := tx.TxPipeline()

		for _, lockKey := range lockKeys {
			pipe.Set(ctx, lockKey, newSessionId, ttl)
		}

		_, err := pipe.Exec(ctx)

		return err
	}, lockKeys...)

	if err != nil {
		return fmt.Errorf(
			"failed to migrate seat locks from old session %s to new session %s: %w",
			oldSessionId,
			newSessionId,
			err)
	}

	pipe := app.redis.TxPipeline()

	pipe.Set(ctx, holdSessionKey(newSessionId), holdBytes, ttl)
	pipe.Del(ctx, holdSessionKey(oldSessionId))

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to execute Redis pipeline for hold migration: %w", err)
	}

	return nil
}

func holdSessionKey(sessionID string) string {
	return fmt.Sprintf("hold:%s", sessionID)
}

func seatLockKey(showtimeID, seatID int) string {
	return fmt.Sprintf("seat_lock:%d:%d", showtimeID, seatID)
}

func seatSetKey(showtimeID int) string {
	return fmt.Sprintf("seat_locks:%d", showtimeID)
}
