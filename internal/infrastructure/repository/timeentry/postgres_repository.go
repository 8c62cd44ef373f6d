// Package timeentry provides PostgreSQL persistence for time entries.
package timeentry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "worktrack/tracker-api/internal/domain/timeentry"
	"worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/infrastructure/database/entities"
	"worktrack/tracker-api/internal/infrastructure/metrics"
	"worktrack/tracker-api/internal/infrastructure/repository/gormquery"
)

// columns maps query field names to time entry table columns.
var columns = map[string]string{
	"date":     "date",
	"note":     "note",
	"duration": "duration",
	"owner_id": "owner_id",
}

// PostgresRepository provides persistence for time entries.
type PostgresRepository struct {
	db *gorm.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByID retrieves a time entry with its owner preloaded. Returns
// (nil, nil) when the entry does not exist.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	var entity entities.TimeEntry
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find time entry: %w", err)
	}
	return mapEntryFromEntity(&entity), nil
}

// List returns a page of entries plus the total count before paging. Owners
// are preloaded; entries come back sorted by date unless the filter spec
// orders otherwise.
func (r *PostgresRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.TimeEntry, int64, error) {
	start := time.Now()
	defer func() {
		metrics.RecordDBQuery("time_entry_list", time.Since(start).Seconds())
	}()

	base := r.db.WithContext(ctx).Model(&entities.TimeEntry{})
	if filter.OwnerID != nil {
		base = base.Where("owner_id = ?", *filter.OwnerID)
	}

	base, err := gormquery.Conditions(base, filter.Spec, columns)
	if err != nil {
		return nil, 0, fmt.Errorf("apply time entry query: %w", err)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count time entries: %w", err)
	}

	paged, err := gormquery.Page(base, filter.Spec, columns, "date ASC", filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("apply time entry paging: %w", err)
	}

	var rows []entities.TimeEntry
	if err := paged.Preload("Owner").Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("list time entries: %w", err)
	}

	entries := make([]*domain.TimeEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, mapEntryFromEntity(&rows[i]))
	}
	return entries, total, nil
}

// Create inserts a new time entry record.
func (r *PostgresRepository) Create(ctx context.Context, entry *domain.TimeEntry) error {
	entity := mapEntryToEntity(entry)
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create time entry: %w", err)
	}
	return nil
}

// Update persists changes to a time entry record.
func (r *PostgresRepository) Update(ctx context.Context, entry *domain.TimeEntry) error {
	updates := map[string]interface{}{
		"date":     entry.Date,
		"note":     entry.Note,
		"duration": entry.Duration,
		"owner_id": entry.OwnerID,
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.TimeEntry{}).
		Where("id = ?", entry.ID).
		Updates(updates).Error; err != nil {
		return fmt.Errorf("update time entry: %w", err)
	}
	return nil
}

// Delete removes the time entry record.
func (r *PostgresRepository) Delete(ctx context.Context, entry *domain.TimeEntry) error {
	if err := r.db.WithContext(ctx).
		Where("id = ?", entry.ID).
		Delete(&entities.TimeEntry{}).Error; err != nil {
		return fmt.Errorf("delete time entry: %w", err)
	}
	return nil
}

func mapEntryFromEntity(entity *entities.TimeEntry) *domain.TimeEntry {
	entry := &domain.TimeEntry{
		ID:       entity.ID,
		Date:     entity.Date,
		Note:     entity.Note,
		Duration: entity.Duration,
		OwnerID:  entity.OwnerID,
	}
	if entity.Owner != nil {
		entry.Owner = &user.User{
			ID:                         entity.Owner.ID,
			Email:                      entity.Owner.Email,
			Name:                       entity.Owner.Name,
			PreferredWorkingHourPerDay: entity.Owner.PreferredWorkingHourPerDay,
		}
	}
	return entry
}

func mapEntryToEntity(entry *domain.TimeEntry) *entities.TimeEntry {
	return &entities.TimeEntry{
		ID:       entry.ID,
		Date:     entry.Date,
		Note:     entry.Note,
		Duration: entry.Duration,
		OwnerID:  entry.OwnerID,
	}
}
