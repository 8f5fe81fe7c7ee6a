package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	bookingserrors "pawsteps/internal/bookings/errors"
	"pawsteps/pkg/model"
	"time"
)

// BookingsFileName is the single serialized entry holding every booking across
// all identities; reads filter by owner.
const BookingsFileName = "bookings.json"

type localBookingRepository struct {
	path string
	mu   sync.Mutex
}

// NewLocalBookingRepository returns the file-backed store used by the local
// variant. Insertion order is preserved on disk and on reads.
func NewLocalBookingRepository(dataDir string) (BookingRepository, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &localBookingRepository{
		path: filepath.Join(dataDir, BookingsFileName),
	}, nil
}

func (r *localBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.load()
	if err != nil {
		return err
	}

	booking.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	bookings = append(bookings, booking)

	return r.save(bookings)
}

func (r *localBookingRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bookings, err := r.load()
	if err != nil {
		return nil, err
	}

	owned := []*model.Booking{}
	for _, b := range bookings {
		if b.OwnerID == ownerID {
			owned = append(owned, b)
		}
	}
	return owned, nil
}

func (r *localBookingRepository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	owned, err := r.FindByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return int64(len(owned)), nil
}

func (r *localBookingRepository) load() ([]*model.Booking, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*model.Booking{}, nil
		}
		return nil, fmt.Errorf("failed to read booking store: %w", err)
	}

	var bookings []*model.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, fmt.Errorf("%w: %v", bookingserrors.ErrStoreCorrupted, err)
	}
	return bookings, nil
}

// save writes through a temp file and renames, so a crash mid-write cannot
// leave a half-serialized store behind.
func (r *localBookingRepository) save(bookings []*model.Booking) error {
	data, err := json.MarshalIndent(bookings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize bookings: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write booking store: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace booking store: %w", err)
	}
	return nil
}
