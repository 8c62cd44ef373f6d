// Package identity implements the identity boundary on top of the accounts
// tables: bcrypt credential storage, role assignments and local JWT
// issuance for the login endpoint.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"worktrack/tracker-api/internal/domain/authz"
	domain "worktrack/tracker-api/internal/domain/identity"
	"worktrack/tracker-api/internal/infrastructure/database/entities"
)

// Store implements domain Manager and Authenticator against the accounts
// tables.
type Store struct {
	db       *gorm.DB
	secret   []byte
	issuer   string
	audience string
	tokenTTL time.Duration
}

// Config controls token issuance.
type Config struct {
	JWTSecret string
	Issuer    string
	Audience  string
	TokenTTL  time.Duration
}

// NewStore constructs the identity store.
func NewStore(db *gorm.DB, cfg Config) *Store {
	return &Store{
		db:       db,
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		tokenTTL: cfg.TokenTTL,
	}
}

// GetRoles returns the role names assigned to the account.
func (s *Store) GetRoles(ctx context.Context, userID string) ([]string, error) {
	var roles []string
	if err := s.db.WithContext(ctx).
		Model(&entities.AccountRole{}).
		Where("account_id = ?", userID).
		Order("role ASC").
		Pluck("role", &roles).Error; err != nil {
		return nil, &domain.OperationError{Message: "failed to load roles", Cause: err}
	}
	return roles, nil
}

// ReplaceRoles replaces the account's role set with the given roles.
func (s *Store) ReplaceRoles(ctx context.Context, userID string, roles []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", userID).
			Delete(&entities.AccountRole{}).Error; err != nil {
			return err
		}
		for _, role := range roles {
			if err := tx.Create(&entities.AccountRole{
				AccountID: userID,
				Role:      role,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &domain.OperationError{Message: "failed to replace roles", Cause: err}
	}
	return nil
}

// CountUsersInRoles returns the number of accounts per given role name.
func (s *Store) CountUsersInRoles(ctx context.Context, roles ...string) (map[string]int, error) {
	counts := make(map[string]int, len(roles))
	for _, role := range roles {
		counts[role] = 0
	}

	var rows []struct {
		Role  string
		Count int
	}
	if err := s.db.WithContext(ctx).
		Model(&entities.AccountRole{}).
		Select("role, COUNT(DISTINCT account_id) AS count").
		Where("role IN ?", roles).
		Group("role").
		Find(&rows).Error; err != nil {
		return nil, &domain.OperationError{Message: "failed to count roles", Cause: err}
	}
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

// CreateAccount provisions a new identity account with a bcrypt hashed
// password. When account.ID is empty a new one is assigned.
func (s *Store) CreateAccount(ctx context.Context, account *domain.Account) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(account.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", &domain.RegistrationError{Message: "failed to hash password", Cause: err}
	}

	id := account.ID
	if id == "" {
		id = uuid.NewString()
	}

	entity := &entities.Account{
		ID:           id,
		Email:        account.Email,
		Name:         account.Name,
		PasswordHash: string(hash),
	}
	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return "", &domain.RegistrationError{Message: "failed to create account", Cause: err}
	}
	return id, nil
}

// RemoveAccount deletes the account and its role assignments.
func (s *Store) RemoveAccount(ctx context.Context, userID string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", userID).
			Delete(&entities.AccountRole{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&entities.Account{}).Error
	})
	if err != nil {
		return &domain.OperationError{Message: "failed to remove account", Cause: err}
	}
	return nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (s *Store) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	var account entities.Account
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.ChangePasswordError{Message: "Unauthorized."}
		}
		return &domain.OperationError{Message: "failed to load account", Cause: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(oldPassword)); err != nil {
		return &domain.ChangePasswordError{Message: "Current password is incorrect.", Cause: err}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return &domain.ChangePasswordError{Message: "failed to hash password", Cause: err}
	}

	if err := s.db.WithContext(ctx).
		Model(&entities.Account{}).
		Where("id = ?", userID).
		Update("password_hash", string(hash)).Error; err != nil {
		return &domain.OperationError{Message: "failed to update password", Cause: err}
	}
	return nil
}

// Login verifies credentials and issues a signed access token carrying the
// account's roles.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	var account entities.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &domain.LoginError{Message: "Bad user name or password combination."}
		}
		return nil, &domain.OperationError{Message: "failed to load account", Cause: err}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, &domain.LoginError{Message: "Bad user name or password combination.", Cause: err}
	}

	roles, err := s.GetRoles(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   account.ID,
		"email": account.Email,
		"name":  account.Name,
		"roles": roles,
		"iss":   s.issuer,
		"aud":   s.audience,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, &domain.LoginError{Message: "failed to sign token", Cause: err}
	}

	return &domain.TokenPair{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL / time.Second),
	}, nil
}

// EnsureAdmin seeds an initial admin account when none exists yet. Intended
// for first boot of a fresh database.
func (s *Store) EnsureAdmin(ctx context.Context, email, password string) (string, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&entities.AccountRole{}).
		Where("role = ?", authz.RoleAdmin).
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return "", nil
	}

	id, err := s.CreateAccount(ctx, &domain.Account{
		Email:    email,
		Name:     "Administrator",
		Password: password,
	})
	if err != nil {
		return "", err
	}
	if err := s.ReplaceRoles(ctx, id, []string{authz.RoleAdmin}); err != nil {
		return "", err
	}
	return id, nil
}
