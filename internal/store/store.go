package store

import (
	"context"
	"errors"
)

var ErrMissingId = errors.New("record has no id")

// Schema describes how a domain record maps onto a tabular row. The first
// column is always "id", a generated unique string.
type Schema[T any] struct {
	Table   string
	Columns []string
	Id      func(T) string
	Encode  func(T) []string
	Decode  func(row []string) (T, error)
}

// Table is the record store contract shared by all domains: load the whole
// table, persist the whole table, mutate by id. Last write wins.
type Table[T any] interface {
	LoadAll(ctx context.Context) ([]T, error)
	ReplaceAll(ctx context.Context, records []T) error
	Append(ctx context.Context, records ...T) error
	Update(ctx context.Context, record T) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
