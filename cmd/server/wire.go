//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"worktrack/tracker-api/internal/config"
	"worktrack/tracker-api/internal/domain/account"
	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/authz/requirements"
	domainidentity "worktrack/tracker-api/internal/domain/identity"
	"worktrack/tracker-api/internal/domain/query"
	"worktrack/tracker-api/internal/domain/timeentry"
	"worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/domain/validation"
	"worktrack/tracker-api/internal/infrastructure/auth"
	"worktrack/tracker-api/internal/infrastructure/database"
	"worktrack/tracker-api/internal/infrastructure/identity"
	"worktrack/tracker-api/internal/infrastructure/logger"
	"worktrack/tracker-api/internal/infrastructure/querystring"
	"worktrack/tracker-api/internal/infrastructure/retry"
	timeentryrepo "worktrack/tracker-api/internal/infrastructure/repository/timeentry"
	userrepo "worktrack/tracker-api/internal/infrastructure/repository/user"
	"worktrack/tracker-api/internal/interfaces/httpserver"
)

var trackerSet = wire.NewSet(
	userrepo.NewPostgresRepository,
	wire.Bind(new(user.Repository), new(*userrepo.PostgresRepository)),
	timeentryrepo.NewPostgresRepository,
	wire.Bind(new(timeentry.Repository), new(*timeentryrepo.PostgresRepository)),
	newIdentityStore,
	wire.Bind(new(domainidentity.Manager), new(*identity.Store)),
	wire.Bind(new(domainidentity.Authenticator), new(*identity.Store)),
	auth.NewResolver,
	wire.Bind(new(user.CurrentUserResolver), new(*auth.Resolver)),
	querystring.NewParser,
	wire.Bind(new(query.Parser), new(*querystring.Parser)),
	newAuthorizer,
	newTimeEntryService,
	wire.Bind(new(timeentry.Service), new(*timeentry.DefaultService)),
	newUserService,
	wire.Bind(new(user.Service), new(*user.DefaultService)),
	newAccountService,
	wire.Bind(new(account.Service), new(*account.DefaultService)),
)

// BuildApplication demonstrates how to assemble the tracker service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		newAuthValidator,
		trackerSet,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := retry.Do(ctx, retry.ConnectPolicy(), func(ctx context.Context, attempt int) (*gorm.DB, error) {
		return database.Connect(cfg)
	})
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

func newIdentityStore(db *gorm.DB, cfg *config.Config) *identity.Store {
	return identity.NewStore(db, identity.Config{
		JWTSecret: cfg.JWTSecret,
		Issuer:    cfg.AuthIssuer,
		Audience:  cfg.AuthAudience,
		TokenTTL:  cfg.TokenTTL,
	})
}

func newAuthorizer() *authz.Engine {
	return authz.NewEngine(
		[]authz.ResourceRequirement{
			requirements.NewTimeEntryRequirement(),
			requirements.NewUserRequirement(),
		},
		[]authz.ResourceTypeRequirement{
			requirements.NewTimeEntryTypeRequirement(),
			requirements.NewUserTypeRequirement(),
		},
	)
}

func newTimeEntryService(
	authorizer *authz.Engine,
	queryParser query.Parser,
	repo timeentry.Repository,
	users user.Repository,
	resolver user.CurrentUserResolver,
	cfg *config.Config,
	log zerolog.Logger,
) *timeentry.DefaultService {
	validators := validationDispatcherForEntries(users)
	return timeentry.NewService(validators, authorizer, queryParser, repo, resolver, cfg.MaxPageSize, log)
}

func newUserService(
	authorizer *authz.Engine,
	repo user.Repository,
	identityManager domainidentity.Manager,
	resolver user.CurrentUserResolver,
	queryParser query.Parser,
	cfg *config.Config,
	log zerolog.Logger,
) *user.DefaultService {
	validators := validationDispatcherForUsers(repo, identityManager, resolver)
	return user.NewService(validators, authorizer, repo, identityManager, resolver, queryParser, cfg.MaxPageSize, cfg.DefaultPassword, log)
}

func newAccountService(
	identityManager domainidentity.Manager,
	authenticator domainidentity.Authenticator,
	users user.Repository,
	resolver user.CurrentUserResolver,
	log zerolog.Logger,
) *account.DefaultService {
	validators := validationDispatcherForAccounts()
	return account.NewService(validators, identityManager, authenticator, users, resolver, log)
}

func validationDispatcherForEntries(users user.Repository) *validation.Dispatcher {
	return validation.NewDispatcher(
		timeentry.NewUpsertValidator(users),
		timeentry.NewDeleteValidator(),
	)
}

func validationDispatcherForUsers(users user.Repository, identityManager domainidentity.Manager, resolver user.CurrentUserResolver) *validation.Dispatcher {
	return validation.NewDispatcher(
		user.NewUpsertValidator(users),
		user.NewDeleteValidator(users, identityManager, resolver),
		user.NewUpdateSettingsValidator(),
	)
}

func validationDispatcherForAccounts() *validation.Dispatcher {
	return validation.NewDispatcher(
		account.NewRegisterValidator(),
		account.NewChangePasswordValidator(),
	)
}
