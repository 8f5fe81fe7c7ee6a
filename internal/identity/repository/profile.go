package repository

import (
	"context"
	"fmt"
	"time"

	"pawsteps/pkg/config"
	"pawsteps/pkg/model"

	"github.com/jmoiron/sqlx"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	FindByID(ctx context.Context, id string) (*model.Profile, error)
}

type postgresProfileRepository struct {
	cfg *config.Config
	db  *sqlx.DB
}

// NewPostgresProfileRepository writes the profile row that mirrors a newly
// created auth identity. This is the second step of a non-atomic pair: the
// caller decides what to do when it fails.
func NewPostgresProfileRepository(cfg *config.Config) ProfileRepository {
	return &postgresProfileRepository{
		cfg: cfg,
		db:  cfg.Client.Postgres,
	}
}

func (r *postgresProfileRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *postgresProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	query := `INSERT INTO profiles (id, email, name) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, profile.ID, profile.Email, profile.Name); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *postgresProfileRepository) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var profile model.Profile
	query := `SELECT id, email, name FROM profiles WHERE id = $1`
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}
