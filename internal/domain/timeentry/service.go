package timeentry

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"worktrack/tracker-api/internal/domain/authz"
	"worktrack/tracker-api/internal/domain/query"
	"worktrack/tracker-api/internal/domain/user"
	"worktrack/tracker-api/internal/domain/validation"
)

// Service defines the time entry business logic.
type Service interface {
	Upsert(ctx context.Context, command *UpsertCommand) (*TimeEntry, error)
	Delete(ctx context.Context, command *DeleteCommand) error
	List(ctx context.Context, q *ListQuery) (*PagedResult, error)
	GenerateSummaryReport(ctx context.Context, q *SummaryQuery) ([]*SummaryReportItem, error)
}

// DefaultService implements Service. Every write authorizes the resource
// type first, validates the command second and only then touches the
// repository.
type DefaultService struct {
	validator   *validation.Dispatcher
	authorizer  *authz.Engine
	queryParser query.Parser
	repo        Repository
	resolver    user.CurrentUserResolver
	maxPageSize int
	log         zerolog.Logger
}

// NewService creates a new time entry service. maxPageSize caps every
// listing page regardless of what the client asks for.
func NewService(
	validator *validation.Dispatcher,
	authorizer *authz.Engine,
	queryParser query.Parser,
	repo Repository,
	resolver user.CurrentUserResolver,
	maxPageSize int,
	log zerolog.Logger,
) *DefaultService {
	return &DefaultService{
		validator:   validator,
		authorizer:  authorizer,
		queryParser: queryParser,
		repo:        repo,
		resolver:    resolver,
		maxPageSize: maxPageSize,
		log:         log.With().Str("service", "timeentry").Logger(),
	}
}

// queryFields are the entry fields an external query string may reference.
var queryFields = []string{"date", "note", "duration", "owner_id"}

// Upsert creates the entry when no row exists for the command ID and updates
// it otherwise. Reassigning the owner on update triggers a second instance
// authorization against the updated entry, since giving an entry away may
// need permissions a same-owner edit does not.
func (s *DefaultService) Upsert(ctx context.Context, command *UpsertCommand) (*TimeEntry, error) {
	principal, err := s.resolver.ResolvePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.authorizer.AuthorizeResourceType(principal, authz.OperationUpsert, authz.ResourceTimeEntry); err != nil {
		return nil, err
	}

	if command == nil {
		return nil, validation.NewError("Command can not be null.")
	}
	if err := s.validator.Validate(ctx, command); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByID(ctx, command.ID)
	if err != nil {
		return nil, err
	}

	if entry != nil {
		if err := s.authorizer.AuthorizeResource(principal, authz.OperationUpdate, entry); err != nil {
			return nil, err
		}
		entry.Duration = command.Duration
		entry.Note = command.Note
		entry.Date = command.Date

		if entry.OwnerID != command.OwnerID {
			entry.OwnerID = command.OwnerID
			entry.Owner = nil
			if err := s.authorizer.AuthorizeResource(principal, authz.OperationUpdate, entry); err != nil {
				return nil, err
			}
		}

		if err := s.repo.Update(ctx, entry); err != nil {
			return nil, err
		}
		return entry, nil
	}

	entry = &TimeEntry{
		ID:       command.ID,
		Date:     command.Date,
		Duration: command.Duration,
		Note:     command.Note,
		OwnerID:  command.OwnerID,
	}
	if err := s.authorizer.AuthorizeResource(principal, authz.OperationCreate, entry); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the entry. A missing entry is a silent no-op.
func (s *DefaultService) Delete(ctx context.Context, command *DeleteCommand) error {
	principal, err := s.resolver.ResolvePrincipal(ctx)
	if err != nil {
		return err
	}
	if err := s.authorizer.AuthorizeResourceType(principal, authz.OperationDelete, authz.ResourceTimeEntry); err != nil {
		return err
	}

	if command == nil {
		return validation.NewError("Command can not be null.")
	}
	if err := s.validator.Validate(ctx, command); err != nil {
		return err
	}

	entry, err := s.repo.FindByID(ctx, command.TimeEntryID)
	if err != nil {
		return err
	}
	if entry == nil {
		return nil
	}

	if err := s.authorizer.AuthorizeResource(principal, authz.OperationDelete, entry); err != nil {
		return err
	}
	return s.repo.Delete(ctx, entry)
}

// List returns a page of entries with owner names, each row flagged when the
// owner's total for that calendar day over the returned page is under their
// preferred working hours.
func (s *DefaultService) List(ctx context.Context, q *ListQuery) (*PagedResult, error) {
	if q == nil {
		return nil, validation.NewError("Query must be specified.")
	}

	principal, err := s.resolver.ResolvePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	operation := authz.OperationRead
	if q.IncludeAllUsers {
		operation = authz.OperationReadAll
	}
	if err := s.authorizer.AuthorizeResourceType(principal, operation, authz.ResourceTimeEntry); err != nil {
		return nil, err
	}

	filter := Filter{Limit: s.pageSize(q.PageSize)}
	if operation == authz.OperationRead {
		currentUser, err := s.resolver.ResolveUser(ctx)
		if err != nil {
			return nil, err
		}
		filter.OwnerID = &currentUser.ID
	}

	if q.Query != "" {
		spec, err := s.queryParser.Parse(q.Query, queryFields...)
		if err != nil {
			return nil, validation.NewError("Invalid query string.")
		}
		filter.Spec = spec
	}
	if q.OrderBy != "" {
		if filter.Spec == nil {
			filter.Spec = &query.Spec{}
		}
		if filter.Spec.Order == nil {
			filter.Spec.Order = query.ParseOrderBy(q.OrderBy)
		}
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Day totals over the returned page, keyed by owner and calendar day.
	dayTotals := make(map[string]float64)
	for _, entry := range entries {
		dayTotals[dayKey(entry)] += entry.Duration
	}

	rows := make([]*EntryWithOwnerName, 0, len(entries))
	for _, entry := range entries {
		row := &EntryWithOwnerName{
			ID:       entry.ID,
			Date:     entry.Date,
			Note:     entry.Note,
			Duration: entry.Duration,
			OwnerID:  entry.OwnerID,
		}
		if entry.Owner != nil {
			row.OwnerName = entry.Owner.Name
			row.IsUnderPreferredWorkingHourPerDay = dayTotals[dayKey(entry)] < entry.Owner.PreferredWorkingHourPerDay
		}
		rows = append(rows, row)
	}

	return &PagedResult{TotalCount: total, Results: rows}, nil
}

// GenerateSummaryReport groups entries by owner and calendar day, summing
// durations and collecting notes in chronological order per owner.
func (s *DefaultService) GenerateSummaryReport(ctx context.Context, q *SummaryQuery) ([]*SummaryReportItem, error) {
	if q == nil {
		return nil, validation.NewError("Query can not be null.")
	}

	principal, err := s.resolver.ResolvePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	operation := authz.OperationRead
	if q.IncludeTimeEntriesOfAllUsers {
		operation = authz.OperationReadAll
	}
	if err := s.authorizer.AuthorizeResourceType(principal, operation, authz.ResourceTimeEntry); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(ctx, q); err != nil {
		return nil, err
	}

	filter := Filter{}
	if !q.IncludeTimeEntriesOfAllUsers {
		currentUser, err := s.resolver.ResolveUser(ctx)
		if err != nil {
			return nil, err
		}
		filter.OwnerID = &currentUser.ID
	}

	if q.Query != "" {
		spec, err := s.queryParser.Parse(q.Query, queryFields...)
		if err != nil {
			return nil, validation.NewError("Invalid query string.")
		}
		filter.Spec = spec
	}

	entries, _, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].OwnerID != entries[j].OwnerID {
			return entries[i].OwnerID < entries[j].OwnerID
		}
		return entries[i].Date.Before(entries[j].Date)
	})

	var keys []string
	groups := make(map[string][]*TimeEntry)
	for _, entry := range entries {
		key := dayKey(entry)
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], entry)
	}

	items := make([]*SummaryReportItem, 0, len(keys))
	for _, key := range keys {
		group := groups[key]
		first := group[0]

		item := &SummaryReportItem{
			OwnerID: first.OwnerID,
			Date:    truncateToDay(first.Date),
			Notes:   make([]string, 0, len(group)),
		}
		if first.Owner != nil {
			item.OwnerName = first.Owner.Name
		}
		for _, entry := range group {
			item.Notes = append(item.Notes, entry.Note)
			item.TotalTime += entry.Duration
		}
		if first.Owner != nil {
			item.IsUnderPreferredWorkingHoursPerDay = item.TotalTime < first.Owner.PreferredWorkingHourPerDay
		}
		items = append(items, item)
	}

	return items, nil
}

// pageSize clamps the requested page size to (0, maxPageSize]. Zero and
// negative requests fall back to the cap so no request disables the limit.
func (s *DefaultService) pageSize(requested *int) int {
	if requested != nil && *requested > 0 && *requested < s.maxPageSize {
		return *requested
	}
	return s.maxPageSize
}

func dayKey(entry *TimeEntry) string {
	return entry.OwnerID + "|" + entry.Date.Format("2006-01-02")
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
