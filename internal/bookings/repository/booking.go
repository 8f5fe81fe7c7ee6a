package repository

import (
	"context"
	"fmt"
	"time"

	"pawsteps/pkg/config"
	"pawsteps/pkg/model"

	"github.com/jmoiron/sqlx"
)

const TableName = "bookings"

// BookingRepository is the storage contract shared by both variants. Bookings
// are append-only: there is no update or delete, and reads are always scoped
// to a single owner.
//
// Ordering differs by backend and is part of each implementation's contract:
// the Postgres store returns most-recent-first, the local store returns
// insertion order. Both are stable across repeated reads.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
}

type postgresBookingRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

// NewPostgresBookingRepository returns the delegated-backend store. Every
// query filters on user_id so a caller can only ever touch its own rows.
func NewPostgresBookingRepository(cfg *config.Config) BookingRepository {
	return &postgresBookingRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

func (r *postgresBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *postgresBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	query := `INSERT INTO bookings (id, user_id, service, date, "time", duration_mins, pets, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.OwnerID,
		booking.Service,
		booking.Date,
		booking.Time,
		booking.DurationMins,
		booking.Pets,
		booking.Notes,
		booking.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *postgresBookingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	query := `SELECT id, user_id, service, date, "time", duration_mins, pets, notes, created_at
	          FROM bookings
	          WHERE user_id = $1
	          ORDER BY created_at DESC, id DESC`

	bookings := []*model.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to find bookings: %w", err)
	}
	return bookings, nil
}

func (r *postgresBookingRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var count int64
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &count, query, ownerID); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
