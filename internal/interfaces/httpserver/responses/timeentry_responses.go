package responses

import (
	"time"

	"worktrack/tracker-api/internal/domain/timeentry"
)

// TimeEntryResponse is the single entry payload returned from writes.
type TimeEntryResponse struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note"`
	Duration float64   `json:"duration"`
	OwnerID  string    `json:"owner_id"`
}

// MapTimeEntry maps the domain entry to its payload.
func MapTimeEntry(entry *timeentry.TimeEntry) TimeEntryResponse {
	return TimeEntryResponse{
		ID:       entry.ID,
		Date:     entry.Date,
		Note:     entry.Note,
		Duration: entry.Duration,
		OwnerID:  entry.OwnerID,
	}
}

// SummaryReportResponse wraps summary report items for consistent responses.
type SummaryReportResponse struct {
	Items []*timeentry.SummaryReportItem `json:"items"`
}
