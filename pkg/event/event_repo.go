package event

import (
	"context"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/store"
)

type EventRepository interface {
	GetAll(ctx context.Context) ([]Event, error)
	Store(ctx context.Context, events ...Event) error
	Update(ctx context.Context, event Event) (bool, error)
	Delete(ctx context.Context, eventId string) (bool, error)
}

type EventRepositoryImpl struct {
	table store.Table[Event]
}

func NewEventRepo(table store.Table[Event]) *EventRepositoryImpl {
	return &EventRepositoryImpl{table: table}
}

func (r *EventRepositoryImpl) GetAll(ctx context.Context) ([]Event, error) {
	return r.table.LoadAll(ctx)
}

func (r *EventRepositoryImpl) Store(ctx context.Context, events ...Event) error {
	return r.table.Append(ctx, events...)
}

func (r *EventRepositoryImpl) Update(ctx context.Context, event Event) (bool, error) {
	return r.table.Update(ctx, event)
}

func (r *EventRepositoryImpl) Delete(ctx context.Context, eventId string) (bool, error) {
	return r.table.Delete(ctx, eventId)
}
