package goal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/utils"
)

var ErrValidation = errors.New("validation failed")

// Filter narrows the goal list. Completed is a tri-state: nil keeps
// everything, otherwise goals are matched against the flag.
type Filter struct {
	Completed *bool
	Search    string
}

type Service interface {
	Create(ctx context.Context, goal Goal) (Goal, error)
	List(ctx context.Context, filter Filter) ([]Goal, error)
	Update(ctx context.Context, goal Goal) (bool, error)
	Delete(ctx context.Context, goalId string) (bool, error)
}

type ServiceImpl struct {
	repo  Repository
	clock utils.Clock
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: utils.SystemClock{}}
}

func (s *ServiceImpl) Create(ctx context.Context, goal Goal) (Goal, error) {
	if err := validate(goal); err != nil {
		return Goal{}, err
	}
	now := s.clock.Now()
	goal.Id = uuid.NewString()
	goal.Title = strings.TrimSpace(goal.Title)
	goal.CreatedAt = now
	goal.UpdatedAt = now
	if goal.Progress == 100 {
		goal.Completed = true
	}
	if err := s.repo.Store(ctx, goal); err != nil {
		return Goal{}, fmt.Errorf("failed to store goal: %w", err)
	}
	return goal, nil
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Goal, error) {
	goals, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	filtered := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if filter.Completed != nil && g.Completed != *filter.Completed {
			continue
		}
		if search != "" && !matchesSearch(g, search) {
			continue
		}
		filtered = append(filtered, g)
	}

	// Open goals with the nearest target date first; goals without a target
	// date sort last by creation.
	sort.Slice(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if a.TargetDate.IsZero() != b.TargetDate.IsZero() {
			return !a.TargetDate.IsZero()
		}
		if !a.TargetDate.Equal(b.TargetDate) {
			return a.TargetDate.Before(b.TargetDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return filtered, nil
}

func (s *ServiceImpl) Update(ctx context.Context, goal Goal) (bool, error) {
	if err := validate(goal); err != nil {
		return false, err
	}
	goal.UpdatedAt = s.clock.Now()
	if goal.Progress == 100 {
		goal.Completed = true
	}
	return s.repo.Update(ctx, goal)
}

func (s *ServiceImpl) Delete(ctx context.Context, goalId string) (bool, error) {
	return s.repo.Delete(ctx, goalId)
}

func matchesSearch(g Goal, search string) bool {
	return strings.Contains(strings.ToLower(g.Title), search) ||
		strings.Contains(strings.ToLower(g.Description), search)
}

func validate(g Goal) error {
	if strings.TrimSpace(g.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if g.Progress < 0 || g.Progress > 100 {
		return fmt.Errorf("%w: progress must be between 0 and 100", ErrValidation)
	}
	return nil
}
