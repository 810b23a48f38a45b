package journal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/utils"
)

var ErrValidation = errors.New("validation failed")

// Filter narrows journal entries by month, mood, and free-text search over
// title, body, and tags.
type Filter struct {
	Month  *time.Time
	Mood   string
	Search string
}

type Service interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	List(ctx context.Context, filter Filter) ([]Entry, error)
	Update(ctx context.Context, entry Entry) (bool, error)
	Delete(ctx context.Context, entryId string) (bool, error)
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
	entry.Title = strings.TrimSpace(entry.Title)
	entry.Body = strings.TrimSpace(entry.Body)
	entry.CreatedAt = now
	entry.UpdatedAt = now
	if entry.Date.IsZero() {
		entry.Date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	if err := s.repo.Store(ctx, entry); err != nil {
		return Entry{}, fmt.Errorf("failed to store journal entry: %w", err)
	}
	return entry, nil
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Entry, error) {
	entries, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}

	var monthStart, monthEnd time.Time
	if filter.Month != nil {
		m := *filter.Month
		monthStart = time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, m.Location())
		monthEnd = monthStart.AddDate(0, 1, 0)
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if filter.Month != nil && (e.Date.Before(monthStart) || !e.Date.Before(monthEnd)) {
			continue
		}
		if filter.Mood != "" && e.Mood != filter.Mood {
			continue
		}
		if search != "" && !matchesSearch(e, search) {
			continue
		}
		filtered = append(filtered, e)
	}

	// Newest first, the way a journal reads.
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Date.After(filtered[j].Date)
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

func matchesSearch(e Entry, search string) bool {
	if strings.Contains(strings.ToLower(e.Title), search) ||
		strings.Contains(strings.ToLower(e.Body), search) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func validate(e Entry) error {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Errorf("%w: body is required", ErrValidation)
	}
	if e.Mood != "" && !IsValidMood(e.Mood) {
		return fmt.Errorf("%w: unknown mood %q", ErrValidation, e.Mood)
	}
	return nil
}
