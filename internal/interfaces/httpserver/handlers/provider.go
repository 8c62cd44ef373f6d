package handlers

import (
	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/domain/account"
	"worktrack/tracker-api/internal/domain/timeentry"
	"worktrack/tracker-api/internal/domain/user"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	TimeEntry *TimeEntryHandler
	User      *UserHandler
	Account   *AccountHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	timeEntryService timeentry.Service,
	userService user.Service,
	accountService account.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		TimeEntry: NewTimeEntryHandler(timeEntryService, log),
		User:      NewUserHandler(userService, log),
		Account:   NewAccountHandler(accountService, log),
	}
}
