package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/identity"
	"worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/domain/validation"
)

// Service defines the self-service account operations.
type Service interface {
	Register(ctx context.Context, command *RegisterCommand) (*user.User, error)
	Login(ctx context.Context, command *LoginCommand) (*identity.TokenPair, error)
	ChangePassword(ctx context.Context, command *ChangePasswordCommand) error
}

// DefaultService implements Service.
type DefaultService struct {
	validator     *validation.Dispatcher
	identity      identity.Manager
	authenticator identity.Authenticator
	users         user.Repository
	resolver      user.CurrentUserResolver
	log           zerolog.Logger
}

func NewService(
	validator *validation.Dispatcher,
	identityManager identity.Manager,
	authenticator identity.Authenticator,
	users user.Repository,
	resolver user.CurrentUserResolver,
	log zerolog.Logger,
) *DefaultService {
	return &DefaultService{
		validator:     validator,
		identity:      identityManager,
		authenticator: authenticator,
		users:         users,
		resolver:      resolver,
		log:           log.With().Str("service", "account").Logger(),
	}
}

// Register creates the identity account, grants the USER role and creates
// the matching user profile. Anyone may call it; new accounts always start
// as plain users.
func (s *DefaultService) Register(ctx context.Context, command *RegisterCommand) (*user.User, error) {
	if command == nil {
		return nil, validation.NewError("Command can not be null.")
	}
	if err := s.validator.Validate(ctx, command); err != nil {
		return nil, err
	}

	unique, err := s.users.IsEmailUnique(ctx, "", command.Email)
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, validation.NewError("Email has been already used.")
	}

	id, err := s.identity.CreateAccount(ctx, &identity.Account{
		ID:       uuid.NewString(),
		Email:    command.Email,
		Name:     command.Name,
		Password: command.Password,
	})
	if err != nil {
		return nil, err
	}
	if err := s.identity.ReplaceRoles(ctx, id, []string{authz.RoleUser}); err != nil {
		return nil, err
	}

	u := &user.User{
		ID:    id,
		Email: command.Email,
		Name:  command.Name,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Msg("account registered")
	return u, nil
}

// Login exchanges credentials for an access token.
func (s *DefaultService) Login(ctx context.Context, command *LoginCommand) (*identity.TokenPair, error) {
	if command == nil {
		return nil, validation.NewError("Command can not be null.")
	}
	if command.Email == "" || command.Password == "" {
		return nil, validation.NewError("Email and password can not be empty.")
	}
	return s.authenticator.Login(ctx, command.Email, command.Password)
}

// ChangePassword rotates the caller's password after verifying the current
// one.
func (s *DefaultService) ChangePassword(ctx context.Context, command *ChangePasswordCommand) error {
	if command == nil {
		return validation.NewError("Command can not be null.")
	}
	if err := s.validator.Validate(ctx, command); err != nil {
		return err
	}

	currentUser, err := s.resolver.ResolveUser(ctx)
	if err != nil {
		return err
	}
	if currentUser == nil {
		return &identity.ChangePasswordError{Message: "Unauthorized."}
	}

	return s.identity.ChangePassword(ctx, currentUser.ID, command.CurrentPassword, command.NewPassword)
}
