package goal

import (
	"context"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/store"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Goal, error)
	Store(ctx context.Context, goal Goal) error
	Update(ctx context.Context, goal Goal) (bool, error)
	Delete(ctx context.Context, goalId string) (bool, error)
}

type RepositoryImpl struct {
	table store.Table[Goal]
}

func NewRepository(table store.Table[Goal]) *RepositoryImpl {
	return &RepositoryImpl{table: table}
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Goal, error) {
	return r.table.LoadAll(ctx)
}

func (r *RepositoryImpl) Store(ctx context.Context, goal Goal) error {
	return r.table.Append(ctx, goal)
}

func (r *RepositoryImpl) Update(ctx context.Context, goal Goal) (bool, error) {
	return r.table.Update(ctx, goal)
}

func (r *RepositoryImpl) Delete(ctx context.Context, goalId string) (bool, error) {
	return r.table.Delete(ctx, goalId)
}
