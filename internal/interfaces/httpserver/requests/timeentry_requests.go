package requests

import "time"

// UpsertTimeEntryRequest is the payload for creating or replacing a time
// entry.
type UpsertTimeEntryRequest struct {
	Date     time.Time `json:"date" binding:"required"`
	Note     string    `json:"note"`
	Duration float64   `json:"duration"`
	OwnerID  string    `json:"owner_id" binding:"required"`
}

// ListTimeEntriesRequest carries the listing query parameters.
type ListTimeEntriesRequest struct {
	Query           string `form:"query"`
	IncludeAllUsers bool   `form:"include_all_users"`
	PageSize        *int   `form:"page_size"`
	OrderBy         string `form:"order_by"`
}

// SummaryReportRequest carries the summary report query parameters.
type SummaryReportRequest struct {
	Query           string `form:"query"`
	IncludeAllUsers bool   `form:"include_all_users"`
}
