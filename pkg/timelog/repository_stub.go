package timelog

import "context"

type RepositoryStub struct {
	data []Entry
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Entry, error) {
	entries := make([]Entry, len(s.data))
	copy(entries, s.data)
	return entries, nil
}

func (s *RepositoryStub) Store(ctx context.Context, entry Entry) error {
	s.data = append(s.data, entry)
	return nil
}

func (s *RepositoryStub) Update(ctx context.Context, entry Entry) (bool, error) {
	for i, existing := range s.data {
		if existing.Id == entry.Id {
			s.data[i] = entry
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, entryId string) (bool, error) {
	for i, existing := range s.data {
		if existing.Id == entryId {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Reset() {
	s.data = nil
}
