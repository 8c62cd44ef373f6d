package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"worktrack/tracker-api/internal/config"
	"worktrack/tracker-api/internal/domain/account"
	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/authz/requirements"
	"worktrack/tracker-api/internal/domain/timeentry"
	"worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/domain/validation"
	"worktrack/tracker-api/internal/infrastructure/auth"
	"worktrack/tracker-api/internal/infrastructure/database"
	"worktrack/tracker-api/internal/infrastructure/identity"
	"worktrack/tracker-api/internal/infrastructure/logger"
	"worktrack/tracker-api/internal/infrastructure/observability"
	"worktrack/tracker-api/internal/infrastructure/querystring"
	"worktrack/tracker-api/internal/infrastructure/retry"
	timeentryrepo "worktrack/tracker-api/internal/infrastructure/repository/timeentry"
	userrepo "worktrack/tracker-api/internal/infrastructure/repository/user"
	"worktrack/tracker-api/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := retry.Do(ctx, retry.ConnectPolicy(), func(ctx context.Context, attempt int) (*gorm.DB, error) {
		if attempt > 1 {
			log.Warn().Int("attempt", attempt).Msg("retrying database connection")
		}
		return database.Connect(database.Config{
			DSN:             cfg.DatabaseURL,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			MaxOpenConns:    cfg.DBMaxOpenConns,
			ConnMaxLifetime: cfg.DBConnLifetime,
			LogLevel:        gormlogger.Warn,
		})
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	userRepository := userrepo.NewPostgresRepository(db)
	entryRepository := timeentryrepo.NewPostgresRepository(db)

	identityStore := identity.NewStore(db, identity.Config{
		JWTSecret: cfg.JWTSecret,
		Issuer:    cfg.AuthIssuer,
		Audience:  cfg.AuthAudience,
		TokenTTL:  cfg.TokenTTL,
	})
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if _, err := identityStore.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("seed admin account")
		}
	}

	resolver := auth.NewResolver(userRepository)
	queryParser := querystring.NewParser()

	authorizer := authz.NewEngine(
		[]authz.ResourceRequirement{
			requirements.NewTimeEntryRequirement(),
			requirements.NewUserRequirement(),
		},
		[]authz.ResourceTypeRequirement{
			requirements.NewTimeEntryTypeRequirement(),
			requirements.NewUserTypeRequirement(),
		},
	)

	entryValidators := validation.NewDispatcher(
		timeentry.NewUpsertValidator(userRepository),
		timeentry.NewDeleteValidator(),
	)
	userValidators := validation.NewDispatcher(
		user.NewUpsertValidator(userRepository),
		user.NewDeleteValidator(userRepository, identityStore, resolver),
		user.NewUpdateSettingsValidator(),
	)
	accountValidators := validation.NewDispatcher(
		account.NewRegisterValidator(),
		account.NewChangePasswordValidator(),
	)

	entryService := timeentry.NewService(
		entryValidators,
		authorizer,
		queryParser,
		entryRepository,
		resolver,
		cfg.MaxPageSize,
		log,
	)
	userService := user.NewService(
		userValidators,
		authorizer,
		userRepository,
		identityStore,
		resolver,
		queryParser,
		cfg.MaxPageSize,
		cfg.DefaultPassword,
		log,
	)
	accountService := account.NewService(
		accountValidators,
		identityStore,
		identityStore,
		userRepository,
		resolver,
		log,
	)

	httpServer := httpserver.New(cfg, log, entryService, userService, accountService, authValidator)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
