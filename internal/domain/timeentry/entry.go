// Package timeentry provides the time entry aggregate: daily work log
// entries, their listing views and the summary report aggregation.
package timeentry

import (
	"context"
	"time"

	"worktrack/tracker-api/internal/domain/query"
	"worktrack/tracker-api/internal/domain/user"
)

// TimeEntry is one logged unit of work. Duration is in hours. Owner is
// populated by the repository on reads.
type TimeEntry struct {
	ID       string
	Date     time.Time
	Note     string
	Duration float64
	OwnerID  string
	Owner    *user.User
}

// EntryWithOwnerName is the listing view of a time entry, annotated with
// whether the owner's total for that calendar day stayed under their
// preferred working hours.
type EntryWithOwnerName struct {
	ID                                string    `json:"id"`
	Date                              time.Time `json:"date"`
	Note                              string    `json:"note"`
	Duration                          float64   `json:"duration"`
	OwnerID                           string    `json:"owner_id"`
	OwnerName                         string    `json:"owner_name"`
	IsUnderPreferredWorkingHourPerDay bool      `json:"is_under_preferred_working_hour_per_day"`
}

// SummaryReportItem aggregates one owner's entries for one calendar day.
type SummaryReportItem struct {
	Date                               time.Time `json:"date"`
	TotalTime                          float64   `json:"total_time"`
	Notes                              []string  `json:"notes"`
	OwnerID                            string    `json:"owner_id"`
	OwnerName                          string    `json:"owner_name"`
	IsUnderPreferredWorkingHoursPerDay bool      `json:"is_under_preferred_working_hours_per_day"`
}

// PagedResult is a page of listing rows plus the total count before paging.
type PagedResult struct {
	TotalCount int64                 `json:"total_count"`
	Results    []*EntryWithOwnerName `json:"results"`
}

// UpsertCommand creates or updates a time entry.
type UpsertCommand struct {
	ID       string
	Date     time.Time
	Note     string
	Duration float64
	OwnerID  string
}

// DeleteCommand removes a time entry by ID.
type DeleteCommand struct {
	TimeEntryID string
}

// ListQuery selects entries for the paged listing.
type ListQuery struct {
	Query           string
	IncludeAllUsers bool
	PageSize        *int
	OrderBy         string
}

// SummaryQuery selects entries for the summary report.
type SummaryQuery struct {
	Query                        string
	IncludeTimeEntriesOfAllUsers bool
}

// Filter selects entries for repository reads.
type Filter struct {
	// OwnerID scopes the read to one owner's entries.
	OwnerID *string

	// Spec is the parsed external query, optional.
	Spec *query.Spec

	// Limit caps the page size after the spec's own top is applied.
	// Zero means unbounded.
	Limit int
}

// Repository defines storage operations for time entries. FindByID returns
// (nil, nil) for missing rows. Reads populate Owner.
type Repository interface {
	FindByID(ctx context.Context, id string) (*TimeEntry, error)

	// List returns a page of entries plus the total count before paging.
	// Without an explicit order in the spec entries come back sorted by date.
	List(ctx context.Context, filter Filter) ([]*TimeEntry, int64, error)

	Create(ctx context.Context, entry *TimeEntry) error
	Update(ctx context.Context, entry *TimeEntry) error
	Delete(ctx context.Context, entry *TimeEntry) error
}
