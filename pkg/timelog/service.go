package timelog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/utils"
	"github.com/creekroadpottery/PotteryCalendarApp/pkg/event"
)

var ErrValidation = errors.New("validation failed")

// Filter narrows the time log by month and task type.
type Filter struct {
	Month    *time.Time
	TaskType string
}

type Service interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	List(ctx context.Context, filter Filter) ([]Entry, error)
	Update(ctx context.Context, entry Entry) (bool, error)
	Delete(ctx context.Context, entryId string) (bool, error)
	Summary(ctx context.Context, date time.Time) (WeeklySummary, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: utils.SystemClock{}}
}

func (s *ServiceImpl) Create(ctx context.Context, entry Entry) (Entry, error) {
	if err := validate(entry); err != nil {
		return Entry{}, err
	}
	now := s.clock.Now()
	entry.Id = uuid.NewString()
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.Date.IsZero() {
		entry.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	if err := s.repo.Store(ctx, entry); err != nil {
		return Entry{}, fmt.Errorf("failed to store time entry: %w", err)
	}
	return entry, nil
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Entry, error) {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load time log: %w", err)
	}

	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if filter.Month != nil {
			monthStart := time.Date(filter.Month.Year(), filter.Month.Month(), 1, 0, 0, 0, 0, filter.Month.Location())
			monthEnd := monthStart.AddDate(0, 1, 0)
			if e.Date.Before(monthStart) || !e.Date.Before(monthEnd) {
				continue
			}
		}
		if filter.TaskType != "" && e.TaskType != filter.TaskType {
			continue
		}
		filtered = append(filtered, e)
	}

	// Newest first so today's work is on top.
	sort.Slice(filtered, func(i, j int) bool {
		if !filtered[i].Date.Equal(filtered[j].Date) {
			return filtered[i].Date.After(filtered[j].Date)
		}
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

func (s *ServiceImpl) Update(ctx context.Context, entry Entry) (bool, error) {
	if err := validate(entry); err != nil {
		return false, err
	}
	entry.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, entry)
}

func (s *ServiceImpl) Delete(ctx context.Context, entryId string) (bool, error) {
	return s.repo.Delete(ctx, entryId)
}

// Summary aggregates logged minutes per task type per day over the Monday
// to Sunday week containing the given date.
func (s *ServiceImpl) Summary(ctx context.Context, date time.Time) (WeeklySummary, error) {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		return WeeklySummary{}, fmt.Errorf("failed to load time log: %w", err)
	}

	weekStart := startOfWeek(date)
	weekEnd := weekStart.AddDate(0, 0, 7)

	summary := WeeklySummary{
		StartDate: weekStart,
		EndDate:   weekEnd.AddDate(0, 0, -1),
		Days:      make([]DailySummary, 0, 7),
		Totals:    map[string]int{},
	}
	byDay := map[string]*DailySummary{}
	for d := weekStart; d.Before(weekEnd); d = d.AddDate(0, 0, 1) {
		summary.Days = append(summary.Days, DailySummary{Date: d, Minutes: map[string]int{}})
		byDay[d.Format(DateLayout)] = &summary.Days[len(summary.Days)-1]
	}

	seen := map[string]bool{}
	for _, e := range entries {
		day, ok := byDay[e.Date.Format(DateLayout)]
		if !ok {
			continue
		}
		day.Minutes[e.TaskType] += e.Minutes
		day.Total += e.Minutes
		summary.Totals[e.TaskType] += e.Minutes
		summary.Total += e.Minutes
		seen[e.TaskType] = true
	}

	// Columns in the canonical task type order, unknown types appended last.
	for _, taskType := range event.TaskTypes {
		if seen[taskType] {
			summary.TaskTypes = append(summary.TaskTypes, taskType)
			delete(seen, taskType)
		}
	}
	extra := make([]string, 0, len(seen))
	for taskType := range seen {
		extra = append(extra, taskType)
	}
	sort.Strings(extra)
	summary.TaskTypes = append(summary.TaskTypes, extra...)

	return summary, nil
}

func startOfWeek(date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func validate(e Entry) error {
	if strings.TrimSpace(e.TaskType) == "" {
		return fmt.Errorf("%w: task type is required", ErrValidation)
	}
	if !event.IsValidTaskType(e.TaskType) {
		return fmt.Errorf("%w: unknown task type %q", ErrValidation, e.TaskType)
	}
	if e.Minutes <= 0 {
		return fmt.Errorf("%w: minutes must be positive", ErrValidation)
	}
	return nil
}
