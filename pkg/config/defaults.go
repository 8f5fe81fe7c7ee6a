package config

import "time"

const (
	// VariantLocal keeps all state in serialized files on disk; identities are
	// fabricated at sign-in. VariantDelegated uses managed auth (Mongo
	// credentials) plus the relational booking/profile tables.
	VariantLocal     = "local"
	VariantDelegated = "delegated"

	DefaultVariant = VariantLocal

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultDataDir = "./data"

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "pawsteps"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPostgresDSN = "postgres://localhost:5432/pawsteps?sslmode=disable"

	DefaultBookingTopic = "booking.created"

	DefaultSessionTTL = 24 * time.Hour

	DefaultRateLimitRequests = 20
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)
