// Package user provides PostgreSQL persistence for user profiles.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/infrastructure/database/entities"
	"worktrack/tracker-api/internal/infrastructure/metrics"
	"worktrack/tracker-api/internal/infrastructure/repository/gormquery"
)

// columns maps query field names to user table columns.
var columns = map[string]string{
	"name":  "name",
	"email": "email",
}

// PostgresRepository provides persistence for users.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByID retrieves a user with their time entry count. Returns (nil, nil)
// when the user does not exist.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var entity entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	var entryCount int64
	if err := r.db.WithContext(ctx).
		Model(&entities.TimeEntry{}).
		Where("owner_id = ?", id).
		Count(&entryCount).Error; err != nil {
		return nil, fmt.Errorf("count user time entries: %w", err)
	}

	u := mapUserFromEntity(&entity)
	u.TimeEntryCount = int(entryCount)
	return u, nil
}

// IsEmailUnique reports whether no user other than id holds the email.
func (r *PostgresRepository) IsEmailUnique(ctx context.Context, id, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("email = ? AND id <> ?", email, id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check email uniqueness: %w", err)
	}
	return count == 0, nil
}

// List returns a page of users plus the total count before paging. Users
// come back sorted by name unless the filter spec orders otherwise.
func (r *PostgresRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.User, int64, error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("user_list", time.Since(start).Seconds())
	}()

	base := r.db.WithContext(ctx).Model(&entities.User{})
	if filter.ExcludeID != nil {
		base = base.Where("id <> ?", *filter.ExcludeID)
	}

	base, err := gormquery.Conditions(base, filter.Spec, columns)
	if err != nil {
		return nil, 0, fmt.Errorf("apply user query: %w", err)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	paged, err := gormquery.Page(base, filter.Spec, columns, "name ASC", filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("apply user paging: %w", err)
	}

	var rows []entities.User
	if err := paged.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for i := range rows {
		users = append(users, mapUserFromEntity(&rows[i]))
	}
	return users, total, nil
}

// Create inserts a new user record.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	entity := mapUserToEntity(u)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update persists changes to a user record.
func (r *PostgresRepository) Update(ctx context.Context, u *domain.User) error {
	updates := map[string]interface{}{
		"email": u.Email,
		"name":  u.Name,
		"preferred_working_hour_per_day": u.PreferredWorkingHourPerDay,
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("id = ?", u.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete removes the user record. Without cascade the delete fails with
// ErrRelationshipConflict when time entries still reference the user; with
// cascade the entries are removed in the same transaction.
func (r *PostgresRepository) Delete(ctx context.Context, u *domain.User, cascade bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entryCount int64
		if err := tx.Model(&entities.TimeEntry{}).
			Where("owner_id = ?", u.ID).
			Count(&entryCount).Error; err != nil {
			return fmt.Errorf("count user time entries: %w", err)
		}

		if entryCount > 0 {
			if !cascade {
				return domain.ErrRelationshipConflict
			}
			if err := tx.Where("owner_id = ?", u.ID).
				Delete(&entities.TimeEntry{}).Error; err != nil {
				return fmt.Errorf("cascade delete time entries: %w", err)
			}
		}

		if err := tx.Where("id = ?", u.ID).Delete(&entities.User{}).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

func mapUserFromEntity(entity *entities.User) *domain.User {
	return &domain.User{
		ID:                         entity.ID,
		Email:                      entity.Email,
		Name:                       entity.Name,
		PreferredWorkingHourPerDay: entity.PreferredWorkingHourPerDay,
	}
}

func mapUserToEntity(u *domain.User) *entities.User {
	return &entities.User{
		ID:                         u.ID,
		Email:                      u.Email,
		Name:                       u.Name,
		PreferredWorkingHourPerDay: u.PreferredWorkingHourPerDay,
	}
}
