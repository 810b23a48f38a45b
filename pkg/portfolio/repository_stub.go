package portfolio

import "context"

type RepositoryStub struct {
	data []Piece
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{}
}

func (s *RepositoryStub) GetAll(ctx context.Context) ([]Piece, error) {
	pieces := make([]Piece, len(s.data))
	copy(pieces, s.data)
	return pieces, nil
}

func (s *RepositoryStub) Store(ctx context.Context, piece Piece) error {
	s.data = append(s.data, piece)
	return nil
}

func (s *RepositoryStub) Update(ctx context.Context, piece Piece) (bool, error) {
	for i, existing := range s.data {
		if existing.Id == piece.Id {
			s.data[i] = piece
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Delete(ctx context.Context, pieceId string) (bool, error) {
	for i, existing := range s.data {
		if existing.Id == pieceId {
			s.data = append(s.data[:i], s.data[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *RepositoryStub) Reset() {
	s.data = nil
}
