package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	identityerrors "pawsteps/internal/identity/errors"
	"pawsteps/pkg/config"
	"pawsteps/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "Credentials"

type CredentialsRepository interface {
	Create(ctx context.Context, credentials *model.Credentials) error
	FindByEmail(ctx context.Context, email string) (*model.Credentials, error)
}

type mongoCredentialsRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

// NewMongoCredentialsRepository stores auth records in the delegated backend.
// The email field carries a unique index.
func NewMongoCredentialsRepository(cfg *config.Config) CredentialsRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCredentialsRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoCredentialsRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCredentialsRepository) Create(ctx context.Context, credentials *model.Credentials) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	credentials.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	_, err := r.collection.InsertOne(ctx, credentials)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return identityerrors.ErrEmailTaken
		}
		return fmt.Errorf("failed to create credentials: %w", err)
	}
	return nil
}

func (r *mongoCredentialsRepository) FindByEmail(ctx context.Context, email string) (*model.Credentials, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var credentials model.Credentials
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&credentials)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, identityerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credentials: %w", err)
	}

	return &credentials, nil
}
