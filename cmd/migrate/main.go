package main

import (
	"context"

	"pawsteps/internal/migrations"
	"pawsteps/pkg/config"
)

const ServiceName = "migrate"

func main() {
	cfg := config.Load(ServiceName)

	if cfg.Variant != config.VariantDelegated {
		cfg.Log.Fatal("Migrations only apply to the delegated variant", "variant", cfg.Variant)
	}

	cfg.SetMongo()
	cfg.SetPostgres()

	if err := migrations.Run(context.Background(), cfg); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}

	cfg.Log.Info("Migrations completed successfully")
	cfg.GracefulShutdown()
}
