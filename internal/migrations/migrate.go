// Package migrations prepares the delegated backend: the relational booking
// and profile tables, and the unique email index on the credentials
// collection.
package migrations

import (
	"context"
	"fmt"
	"time"

	identityrepo "pawsteps/internal/identity/repository"
	"pawsteps/pkg/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
	id         TEXT PRIMARY KEY,
	email      TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS bookings (
	id            TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	service       TEXT NOT NULL,
	date          TEXT NOT NULL,
	"time"        TEXT NOT NULL,
	duration_mins INTEGER NOT NULL,
	pets          INTEGER NOT NULL,
	notes         TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_user_created ON bookings (user_id, created_at DESC);
`

func Run(ctx context.Context, cfg *config.Config) error {
	if err := migratePostgres(ctx, cfg); err != nil {
		return err
	}
	return migrateMongo(ctx, cfg)
}

func migratePostgres(ctx context.Context, cfg *config.Config) error {
	if _, err := cfg.Client.Postgres.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply relational schema: %w", err)
	}
	cfg.Log.Info("Relational schema applied", "tables", []string{"profiles", "bookings"})
	return nil
}

func migrateMongo(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	collection := cfg.Client.Mongo.
		Database(cfg.MongoDatabaseName).
		Collection(identityrepo.CollectionName)

	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create unique email index: %w", err)
	}

	cfg.Log.Info("Credentials indexes ensured", "collection", identityrepo.CollectionName)
	return nil
}
