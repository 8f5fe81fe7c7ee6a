package service

import (
	"context"
	"sync"
	"time"

	"pawsteps/internal/bookings/repository"
	"pawsteps/internal/bookings/validator"
	"pawsteps/pkg/config"
	apperrors "pawsteps/pkg/errors"
	"pawsteps/pkg/events"
	"pawsteps/pkg/model"
	"pawsteps/pkg/sanitizer"

	"github.com/google/uuid"
)

type BookingService interface {
	Create(ctx context.Context, ownerID string, req *model.BookingRequest) (*model.Booking, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config
}

// NewBookingService wires the store, validation and the optional event
// publisher. Pass publisher as nil when Kafka is not configured.
func NewBookingService(
	repo repository.BookingRepository,
	validator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, ownerID string, req *model.BookingRequest) (*model.Booking, error) {
	if ownerID == "" {
		return nil, apperrors.InvalidInput("Booking owner cannot be empty")
	}

	// Presence of date and time is checked before anything touches the store.
	if req.Date == "" || req.Time == "" {
		return nil, apperrors.Validation("Date and time are required", nil)
	}

	booking := &model.Booking{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Service:      sanitizer.TrimAndNormalize(req.Service),
		Date:         sanitizer.TrimAndNormalize(req.Date),
		Time:         sanitizer.TrimAndNormalize(req.Time),
		DurationMins: req.DurationMins,
		Pets:         req.Pets,
		Notes:        sanitizer.SanitizeNotes(req.Notes),
	}

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "owner_id", ownerID, "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "owner_id", ownerID, "error", err)
		return nil, apperrors.Internal("Failed to save booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"owner_id", booking.OwnerID,
		"service", booking.Service,
		"date", booking.Date,
	)

	s.announce(booking)

	return booking, nil
}

func (s *bookingService) ListByOwner(ctx context.Context, ownerID string) ([]*model.Booking, int64, error) {
	if ownerID == "" {
		return nil, 0, apperrors.InvalidInput("Booking owner cannot be empty")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByOwner(ctx, ownerID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "owner_id", ownerID, "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByOwner(ctx, ownerID)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "owner_id", ownerID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, count, nil
}

// announce publishes the created event. The booking is already committed, so
// a publish failure is logged and swallowed.
func (s *bookingService) announce(booking *model.Booking) {
	if s.publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.publisher.PublishBookingCreated(ctx, booking); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event",
			"booking_id", booking.ID,
			"error", err,
		)
	}
}
