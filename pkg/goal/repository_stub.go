package goal

import "context"

type RepositoryStub struct {
	data []Goal
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Goal, error) {
	goals := make([]Goal, len(s.data))
	copy(goals, s.data)
	return goals, nil
}

func (s *RepositoryStub) Store(ctx context.Context, goal Goal) error {
	s.data = append(s.data, goal)
	return nil
}

func (s *RepositoryStub) Update(ctx context.Context, goal Goal) (bool, error) {
	for i, existing := range s.data {
		if existing.Id == goal.Id {
			s.data[i] = goal
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, goalId string) (bool, error) {
	for i, existing := range s.data {
		if existing.Id == goalId {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Reset() {
	s.data = nil
}
