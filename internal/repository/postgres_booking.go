package repository

import (
	"context"
	"errors"

	"cinebook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create inserts the booking row and its seat rows in one transaction, so
// a booking is never readable without its seat associations.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO bookings (customer_id, showtime_id, total_price, booking_date, status, payment_method, transaction_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`

		err := tx.QueryRow(
			ctx,
			query,
			booking.CustomerID,
			booking.ShowtimeID,
			booking.TotalPrice,
			booking.BookingDate,
			booking.Status,
			booking.PaymentMethod,
			booking.TransactionID).Scan(&booking.ID)

		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(booking.Seats))
		for _, seat := range booking.Seats {
			rows = append(rows, []any{
				booking.ID,
				seat.SeatID,
				seat.Price,
			})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "seat_id", "price"},
			pgx.CopyFromRows(rows),
		)

		return err
	})
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func (p *PostgresBookingRepository) GetByID(ctx context.Context, id int) (*domain.Booking, error) {
	query := `
		SELECT id, customer_id, showtime_id, total_price, booking_date, status, payment_method, transaction_id
		FROM bookings
		WHERE id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ShowtimeID,
		&booking.TotalPrice,
		&booking.BookingDate,
		&booking.Status,
		&booking.PaymentMethod,
		&booking.TransactionID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	booking.Seats, err = p.retrieveBookingSeats(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (p *PostgresBookingRepository) GetByCustomer(
	ctx context.Context,
	customerID int,
	pagination domain.Pagination) ([]domain.Booking, *domain.Metadata, error) {

	query := `
		SELECT
			COUNT(*) OVER(),
			id, customer_id, showtime_id, total_price, booking_date, status, payment_method, transaction_id
		FROM bookings
		WHERE customer_id = $1
		ORDER BY booking_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := p.db.Query(ctx, query, customerID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	totalRecords := 0

	for rows.Next() {
		var booking domain.Booking

		err := rows.Scan(
			&totalRecords,
			&booking.ID,
			&booking.CustomerID,
			&booking.ShowtimeID,
			&booking.TotalPrice,
			&booking.BookingDate,
			&booking.Status,
			&booking.PaymentMethod,
			&booking.TransactionID,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	for i := range bookings {
		bookings[i].Seats, err = p.retrieveBookingSeats(ctx, bookings[i].ID)
		if err != nil {
			return nil, nil, err
		}
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

// UpdateStatus moves the booking to the given status. Callers load the
// booking first, so zero affected rows means another request changed the
// status in between.
func (p *PostgresBookingRepository) UpdateStatus(ctx context.Context, id int, status domain.BookingStatus) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2 AND status <> $1`

	tag, err := p.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEditConflict
	}

	return nil
}

func (p *PostgresBookingRepository) retrieveBookingSeats(ctx context.Context, bookingID int) ([]domain.BookingSeat, error) {
	query := `
		SELECT s.id, s.label, s.category, bs.price
		FROM booking_seats bs
		JOIN seats s ON bs.seat_id = s.id
		WHERE bs.booking_id = $1
		ORDER BY s.seat_row, s.seat_col
	`

	rows, err := p.db.Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.BookingSeat, 0)

	for rows.Next() {
		var seat domain.BookingSeat

		err := rows.Scan(&seat.SeatID, &seat.Label, &seat.Category, &seat.Price)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
