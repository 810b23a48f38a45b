package journal

import (
	"context"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/store"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Entry, error)
	Store(ctx context.Context, entry Entry) error
	Update(ctx context.Context, entry Entry) (bool, error)
	Delete(ctx context.Context, entryId string) (bool, error)
}

type RepositoryImpl struct {
	table store.Table[Entry]
}

func NewRepository(table store.Table[Entry]) *RepositoryImpl {
	return &RepositoryImpl{table: table}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Entry, error) {
	return r.table.LoadAll(ctx)
}

func (r *RepositoryImpl) Store(ctx context.Context, entry Entry) error {
	return r.table.Append(ctx, entry)
}

func (r *RepositoryImpl) Update(ctx context.Context, entry Entry) (bool, error) {
	return r.table.Update(ctx, entry)
}

func (r *RepositoryImpl) Delete(ctx context.Context, entryId string) (bool, error) {
	return r.table.Delete(ctx, entryId)
}
