package main

import (
	bookinghandler "pawsteps/internal/bookings/handler"
	bookingrepo "pawsteps/internal/bookings/repository"
	bookingservice "pawsteps/internal/bookings/service"
	bookingvalidator "pawsteps/internal/bookings/validator"
	identityhandler "pawsteps/internal/identity/handler"
	identityrepo "pawsteps/internal/identity/repository"
	identityservice "pawsteps/internal/identity/service"
	"pawsteps/internal/identity/token"
	identityvalidator "pawsteps/internal/identity/validator"
	pageshandler "pawsteps/internal/pages/handler"
	"pawsteps/pkg/app"
	"pawsteps/pkg/config"
	"pawsteps/pkg/events"
	"pawsteps/pkg/middleware"
)

const ServiceName = "pawsteps"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Pawsteps service", "variant", cfg.Variant)

	tokens, err := token.NewManager(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize session tokens", "error", err)
	}

	identitySvc, bookingRepo := initStores(cfg, tokens)
	publisher := initPublisher(cfg)

	bookingSvc := bookingservice.NewBookingService(
		bookingRepo,
		bookingvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	apiGuard := middleware.RequireIdentity(identitySvc, cfg.Log)
	pageGuard := middleware.RequirePageIdentity(identitySvc, cfg.Log, "/login")

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		identityhandler.NewIdentityHandler(identitySvc, apiGuard, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, apiGuard, cfg.Log),
		pageshandler.NewPagesHandler(pageGuard, cfg.Log),
	)
	serverApp.Run()

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}
	cfg.GracefulShutdown()
}

func initStores(cfg *config.Config, tokens *token.Manager) (identityservice.IdentityService, bookingrepo.BookingRepository) {
	credentialsValidator := identityvalidator.NewCredentialsValidator(cfg.Log)

	switch cfg.Variant {
	case config.VariantDelegated:
		cfg.SetMongo()
		cfg.SetPostgres()

		revoked := identityrepo.NewMemoryRevocationStore()
		if cfg.RedisAddr != "" {
			cfg.SetRedis()
			revoked = identityrepo.NewRedisRevocationStore(cfg.Client.Redis)
		}

		identitySvc := identityservice.NewDelegatedIdentityService(
			identityrepo.NewMongoCredentialsRepository(cfg),
			identityrepo.NewPostgresProfileRepository(cfg),
			tokens,
			revoked,
			credentialsValidator,
			cfg,
		)

		cfg.Log.Info("Delegated stores initialized", "database", cfg.MongoDatabaseName)
		return identitySvc, bookingrepo.NewPostgresBookingRepository(cfg)

	default:
		identities, err := identityrepo.NewLocalIdentityRepository(cfg.DataDir)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize identity store", "error", err)
		}

		identitySvc := identityservice.NewLocalIdentityService(
			identities,
			tokens,
			identityrepo.NewMemoryRevocationStore(),
			credentialsValidator,
			cfg,
		)

		bookings, err := bookingrepo.NewLocalBookingRepository(cfg.DataDir)
		if err != nil {
			cfg.Log.Fatal("Failed to initialize booking store", "error", err)
		}

		cfg.Log.Info("Local stores initialized", "data_dir", cfg.DataDir)
		return identitySvc, bookings
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.BookingTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize event publisher", "error", err)
	}

	cfg.Log.Info("Booking event publisher initialized", "topic", cfg.BookingTopic)
	return publisher
}
