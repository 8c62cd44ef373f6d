package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/identity"
	"worktrack/tracker-api/internal/domain/query"
	"worktrack/tracker-api/internal/domain/validation"
)

// Service defines the user management business logic.
type Service interface {
	Upsert(ctx context.Context, command *UpsertCommand) (*User, error)
	Delete(ctx context.Context, command *DeleteCommand) error
	ListWithRoles(ctx context.Context, q *ListQuery) (*PagedResult, error)
	GetCurrentUserWithRoles(ctx context.Context) (*CurrentUserData, error)
	UpdateCurrentUserSettings(ctx context.Context, command *UpdateSettingsCommand) error
}

// PagedResult is a page of decorated users plus the total count before
// paging.
type PagedResult struct {
	TotalCount int64        `json:"total_count"`
	Results    []*WithRoles `json:"results"`
}

// DefaultService implements Service.
type DefaultService struct {
	validator       *validation.Dispatcher
	authorizer      *authz.Engine
	repo            Repository
	identityManager identity.Manager
	resolver        CurrentUserResolver
	queryParser     query.Parser
	maxPageSize     int
	defaultPassword string
	log             zerolog.Logger
}

// NewService creates a new user service. defaultPassword seeds accounts
// provisioned through admin upserts; the owner is expected to change it.
func NewService(
	validator *validation.Dispatcher,
	authorizer *authz.Engine,
	repo Repository,
	identityManager identity.Manager,
	resolver CurrentUserResolver,
	queryParser query.Parser,
	maxPageSize int,
	defaultPassword string,
	log zerolog.Logger,
) *DefaultService {
	return &DefaultService{
		validator:       validator,
		authorizer:      authorizer,
		repo:            repo,
		identityManager: identityManager,
		resolver:        resolver,
		queryParser:     queryParser,
		maxPageSize:     maxPageSize,
		defaultPassword: defaultPassword,
		log:             log.With().Str("service", "user").Logger(),
	}
}

// userQueryFields are the user fields an external query string may reference.
var userQueryFields = []string{"name", "email"}

// Upsert creates or updates a user profile. On create the identity account
// is provisioned first, then the user row; when Roles is non-nil the role
// assignments are replaced last.
func (s *DefaultService) Upsert(ctx context.Context, command *UpsertCommand) (*User, error) {
	if command == nil {
		return nil, validation.NewError("Command can not be null.")
	}
	if err := s.validator.Validate(ctx, command); err != nil {
		return nil, err
	}

	principal, err := s.resolver.ResolvePrincipal(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, command.ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.authorizer.AuthorizeResource(principal, authz.OperationUpdate, existing); err != nil {
			return nil, err
		}
		existing.Email = command.Email
		existing.Name = command.Name
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		existing = &User{
			ID:    command.ID,
			Email: command.Email,
			Name:  command.Name,
		}
		if err := s.authorizer.AuthorizeResource(principal, authz.OperationCreate, existing); err != nil {
			return nil, err
		}

		if _, err := s.identityManager.CreateAccount(ctx, &identity.Account{
			ID:       existing.ID,
			Email:    existing.Email,
			Name:     existing.Name,
			Password: s.defaultPassword,
		}); err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, existing); err != nil {
			return nil, err
		}
	}

	if command.Roles != nil {
		if err := s.identityManager.ReplaceRoles(ctx, existing.ID, command.Roles); err != nil {
			return nil, err
		}
	}

	return existing, nil
}

// Delete removes the user row and then the identity account. A missing user
// is a silent no-op. The two removals are not transactional: when the
// identity call fails the user row is already gone and the stores diverge
// until the account is cleaned up by hand.
func (s *DefaultService) Delete(ctx context.Context, command *DeleteCommand) error {
	if command == nil {
		return validation.NewError("Command can not be null.")
	}
	if err := s.validator.Validate(ctx, command); err != nil {
		return err
	}

	u, err := s.repo.FindByID(ctx, command.UserID)
	if err != nil {
		return err
	}
	if u == nil {
		return nil
	}

	principal, err := s.resolver.ResolvePrincipal(ctx)
	if err != nil {
		return err
	}
	operation := authz.OperationDelete
	if command.Force {
		operation = authz.OperationForceDelete
	}
	if err := s.authorizer.AuthorizeResource(principal, operation, u); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, u, command.Force); err != nil {
		if errors.Is(err, ErrRelationshipConflict) {
			return fmt.Errorf("delete user %s: %w", u.ID, ErrDeleteConflict)
		}
		return err
	}

	if err := s.identityManager.RemoveAccount(ctx, u.ID); err != nil {
		s.log.Error().Err(err).Str("user_id", u.ID).
			Msg("user row deleted but identity account removal failed")
		return err
	}
	return nil
}

// ListWithRoles returns a page of users decorated with their identity-store
// roles.
func (s *DefaultService) ListWithRoles(ctx context.Context, q *ListQuery) (*PagedResult, error) {
	if q == nil {
		return nil, validation.NewError("Query can not be null.")
	}

	principal, err := s.resolver.ResolvePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeResourceType(principal, authz.OperationRead, authz.ResourceUser); err != nil {
		return nil, err
	}

	filter := Filter{Limit: s.maxPageSize}
	if q.ExcludeMe {
		currentUser, err := s.resolver.ResolveUser(ctx)
		if err != nil {
			return nil, err
		}
		filter.ExcludeID = &currentUser.ID
	}

	if q.Query != "" {
		spec, err := s.queryParser.Parse(q.Query, userQueryFields...)
		if err != nil {
			return nil, validation.NewError("Invalid query string")
		}
		filter.Spec = spec
	}
	if q.Top > 0 && q.Top < s.maxPageSize {
		filter.Limit = q.Top
	}
	if q.OrderBy != "" {
		if filter.Spec == nil {
			filter.Spec = &query.Spec{}
		}
		if filter.Spec.Order == nil {
			filter.Spec.Order = query.ParseOrderBy(q.OrderBy)
		}
	}

	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]*WithRoles, 0, len(users))
	for _, u := range users {
		decorated := NewWithRoles(u)
		roles, err := s.identityManager.GetRoles(ctx, u.ID)
		if err != nil {
			return nil, err
		}
		if roles != nil {
			decorated.Roles = roles
		}
		results = append(results, decorated)
	}

	return &PagedResult{TotalCount: total, Results: results}, nil
}

// GetCurrentUserWithRoles returns the caller's own profile and roles.
func (s *DefaultService) GetCurrentUserWithRoles(ctx context.Context) (*CurrentUserData, error) {
	currentUser, err := s.resolver.ResolveUser(ctx)
	if err != nil {
		return nil, err
	}

	roles, err := s.identityManager.GetRoles(ctx, currentUser.ID)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []string{}
	}

	return &CurrentUserData{
		ID:                         currentUser.ID,
		Name:                       currentUser.Name,
		Email:                      currentUser.Email,
		PreferredWorkingHourPerDay: currentUser.PreferredWorkingHourPerDay,
		Roles:                      roles,
	}, nil
}

// UpdateCurrentUserSettings updates the caller's own name and preferred
// working hours.
func (s *DefaultService) UpdateCurrentUserSettings(ctx context.Context, command *UpdateSettingsCommand) error {
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
	currentUser.Name = command.Name
	currentUser.PreferredWorkingHourPerDay = command.PreferredWorkingHourPerDay

	return s.repo.Update(ctx, currentUser)
}
