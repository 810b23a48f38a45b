package portfolio

import (
	"context"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/store"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Piece, error)
	Store(ctx context.Context, piece Piece) error
	Update(ctx context.Context, piece Piece) (bool, error)
	Delete(ctx context.Context, pieceId string) (bool, error)
}

type RepositoryImpl struct {
	table store.Table[Piece]
}

func NewRepository(table store.Table[Piece]) *RepositoryImpl {
	return &RepositoryImpl{table: table}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Piece, error) {
	return r.table.LoadAll(ctx)
}

func (r *RepositoryImpl) Store(ctx context.Context, piece Piece) error {
	return r.table.Append(ctx, piece)
}

func (r *RepositoryImpl) Update(ctx context.Context, piece Piece) (bool, error) {
	return r.table.Update(ctx, piece)
}

func (r *RepositoryImpl) Delete(ctx context.Context, pieceId string) (bool, error) {
	return r.table.Delete(ctx, pieceId)
}
