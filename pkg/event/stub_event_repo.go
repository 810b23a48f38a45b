package event

import (
	"context"
)

type StubEventRepo struct {
	data []Event
}

func NewStubEventRepo() *StubEventRepo {
	return &StubEventRepo{}
}

func (s *StubEventRepo) GetAll(ctx context.Context) ([]Event, error) {
	events := make([]Event, len(s.data))
	copy(events, s.data)
	return events, nil
}

func (s *StubEventRepo) Store(ctx context.Context, events ...Event) error {
	s.data = append(s.data, events...)
	return nil
}

func (s *StubEventRepo) Update(ctx context.Context, event Event) (bool, error) {
	for i, existing := range s.data {
		if existing.Id == event.Id {
			s.data[i] = event
			return true, nil
		}
	}
	return false, nil
}

func (s *StubEventRepo) Delete(ctx context.Context, eventId string) (bool, error) {
	for i, existing := range s.data {
		if existing.Id == eventId {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *StubEventRepo) Cleanup() {
	s.data = nil
}
