package event

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/utils"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrValidation = errors.New("validation failed")

// Filter narrows the event list the way the calendar sidebar does: a month
// window, category and task-type sets, a show-past toggle, and a free-text
// substring search.
type Filter struct {
	Month      *time.Time
	Categories []string
	TaskTypes  []string
	ShowPast   bool
	Search     string
}

// AgendaDay groups the occurrences of one calendar day, ordered by start.
type AgendaDay struct {
	Date   time.Time
	Events []Event
}

type EventService interface {
	Create(ctx context.Context, prototype Event, rec Recurrence) ([]Event, error)
	List(ctx context.Context, filter Filter) ([]Event, error)
	Agenda(ctx context.Context, filter Filter) ([]AgendaDay, error)
	Update(ctx context.Context, event Event) (bool, error)
	Delete(ctx context.Context, eventId string) (bool, error)
}

type EventServiceImpl struct {
	repo  EventRepository
	clock utils.Clock
}

func NewEventService(repo EventRepository) *EventServiceImpl {
	return &EventServiceImpl{repo: repo, clock: utils.SystemClock{}}
}

// Create validates the prototype, expands the recurrence and appends every
// occurrence to the store as one user-visible operation.
func (s *EventServiceImpl) Create(ctx context.Context, prototype Event, rec Recurrence) ([]Event, error) {
	if err := validate(prototype); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	prototype.Title = strings.TrimSpace(prototype.Title)
	prototype.Location = strings.TrimSpace(prototype.Location)
	prototype.Notes = strings.TrimSpace(prototype.Notes)
	prototype.CreatedAt = now
	prototype.UpdatedAt = now
	if prototype.Id == "" {
		prototype.Id = uuid.NewString()
	}
	if prototype.AllDay {
		// All-day events end one minute before midnight of the end date.
		end := prototype.End
		prototype.End = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 0, 0, end.Location())
	}

	occurrences, err := Expand(prototype, rec)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Store(ctx, occurrences...); err != nil {
		return nil, fmt.Errorf("failed to store occurrences: %w", err)
	}
	log.Debugf("Created %d occurrence(s) of %q", len(occurrences), prototype.Title)
	return occurrences, nil
}

func (s *EventServiceImpl) List(ctx context.Context, filter Filter) ([]Event, error) {
	events, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	filtered := s.applyFilter(events, filter)
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Start.Before(filtered[j].Start)
	})
	return filtered, nil
}

// Agenda returns the filtered events grouped by calendar day.
func (s *EventServiceImpl) Agenda(ctx context.Context, filter Filter) ([]AgendaDay, error) {
	events, err := s.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	days := make([]AgendaDay, 0)
	byDay := make(map[time.Time]int)
	for _, e := range events {
		day := time.Date(e.Start.Year(), e.Start.Month(), e.Start.Day(), 0, 0, 0, 0, e.Start.Location())
		idx, ok := byDay[day]
		if !ok {
			idx = len(days)
			byDay[day] = idx
			days = append(days, AgendaDay{Date: day})
		}
		days[idx].Events = append(days[idx].Events, e)
	}
	return days, nil
}

func (s *EventServiceImpl) Update(ctx context.Context, event Event) (bool, error) {
	if err := validate(event); err != nil {
		return false, err
	}
	event.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, event)
}

func (s *EventServiceImpl) Delete(ctx context.Context, eventId string) (bool, error) {
	return s.repo.Delete(ctx, eventId)
}

func (s *EventServiceImpl) applyFilter(events []Event, filter Filter) []Event {
	var monthStart, monthEnd time.Time
	if filter.Month != nil {
		m := *filter.Month
		monthStart = time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, m.Location())
		monthEnd = monthStart.AddDate(0, 1, 0)
	}
	now := s.clock.Now()
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	filtered := make([]Event, 0, len(events))
	for _, e := range events {
		if filter.Month != nil && !(e.Start.Before(monthEnd) && !e.End.Before(monthStart)) {
			continue
		}
		if !filter.ShowPast && e.End.Before(now) {
			continue
		}
		if len(filter.Categories) > 0 && !slices.Contains(filter.Categories, e.Category) {
			continue
		}
		if len(filter.TaskTypes) > 0 && !slices.Contains(filter.TaskTypes, e.TaskType) {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func matchesSearch(e Event, search string) bool {
	return strings.Contains(strings.ToLower(e.Title), search) ||
		strings.Contains(strings.ToLower(e.Location), search) ||
		strings.Contains(strings.ToLower(e.Notes), search)
}

func validate(e Event) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if !IsValidCategory(e.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, e.Category)
	}
	if !IsValidTaskType(e.TaskType) {
		return fmt.Errorf("%w: unknown task type %q", ErrValidation, e.TaskType)
	}
	if e.Start.IsZero() || e.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrValidation)
	}
	return nil
}
