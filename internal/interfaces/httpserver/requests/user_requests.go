package requests

// UpsertUserRequest is the payload for creating or replacing a user
// profile. Roles, when present, replaces the user's role assignments.
type UpsertUserRequest struct {
	Name  string   `json:"name" binding:"required"`
	Email string   `json:"email" binding:"required"`
	Roles []string `json:"roles"`
}

// ListUsersRequest carries the user listing query parameters.
type ListUsersRequest struct {
	ExcludeMe bool   `form:"exclude_me"`
	Query     string `form:"query"`
	Top       int    `form:"top"`
	OrderBy   string `form:"order_by"`
}

// UpdateSettingsRequest updates the caller's own profile preferences.
type UpdateSettingsRequest struct {
	Name                       string  `json:"name" binding:"required"`
	PreferredWorkingHourPerDay float64 `json:"preferred_working_hour_per_day"`
}
