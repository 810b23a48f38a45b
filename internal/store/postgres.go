package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// SqlTable is the Postgres-backed implementation of Table. Every column is
// stored as text; the schema's encode/decode is the single source of truth
// for value formats, identical to the CSV backend.
type SqlTable[T any] struct {
	schema Schema[T]
	db     *sql.DB
	bus    *event_bus.EventBus
}

func NewSqlTable[T any](schema Schema[T], db *sql.DB, bus *event_bus.EventBus) *SqlTable[T] {
	return &SqlTable[T]{schema: schema, db: db, bus: bus}
}

func (t *SqlTable[T]) LoadAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoteIdents(t.schema.Columns), ", "), quoteIdent(t.schema.Table))

	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query %s: %w", t.schema.Table, err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var records []T
	for rows.Next() {
		values := make([]sql.NullString, len(t.schema.Columns))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			err := fmt.Errorf("could not scan row from %s: %w", t.schema.Table, err)
			log.Error(err)
			return nil, err
		}
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = v.String
		}
		record, err := t.schema.Decode(row)
		if err != nil {
			log.Errorf("skipping malformed row in %s: %v", t.schema.Table, err)
			continue
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (t *SqlTable[T]) ReplaceAll(ctx context.Context, records []T) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(t.schema.Table)); err != nil {
		return fmt.Errorf("could not clear %s: %w", t.schema.Table, err)
	}
	for _, record := range records {
		if _, err := tx.ExecContext(ctx, t.insertQuery(), rowArgs(t.schema.Encode(record))...); err != nil {
			return fmt.Errorf("could not insert into %s: %w", t.schema.Table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	t.notify(ctx)
	return nil
}

func (t *SqlTable[T]) Append(ctx context.Context, records ...T) error {
	for _, record := range records {
		if _, err := t.db.ExecContext(ctx, t.insertQuery(), rowArgs(t.schema.Encode(record))...); err != nil {
			err := fmt.Errorf("could not insert into %s: %w", t.schema.Table, err)
			log.Error(err)
			return err
		}
	}
	t.notify(ctx)
	return nil
}

func (t *SqlTable[T]) Update(ctx context.Context, record T) (bool, error) {
	id := t.schema.Id(record)
	if id == "" {
		return false, ErrMissingId
	}

	assignments := make([]string, 0, len(t.schema.Columns)-1)
	for i, column := range t.schema.Columns[1:] {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", quoteIdent(column), i+1))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d",
		quoteIdent(t.schema.Table), strings.Join(assignments, ", "), len(t.schema.Columns))

	row := t.schema.Encode(record)
	args := append(rowArgs(row[1:]), id)
	result, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not update %s: %w", t.schema.Table, err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	t.notify(ctx)
	return true, nil
}

func (t *SqlTable[T]) Delete(ctx context.Context, id string) (bool, error) {
	result, err := t.db.ExecContext(ctx, "DELETE FROM "+quoteIdent(t.schema.Table)+" WHERE id = $1", id)
	if err != nil {
		err := fmt.Errorf("could not delete from %s: %w", t.schema.Table, err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	t.notify(ctx)
	return true, nil
}

func (t *SqlTable[T]) insertQuery() string {
	placeholders := make([]string, len(t.schema.Columns))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(t.schema.Table), strings.Join(quoteIdents(t.schema.Columns), ", "), strings.Join(placeholders, ", "))
}

func (t *SqlTable[T]) notify(ctx context.Context) {
	if t.bus != nil {
		t.bus.Publish(event_bus.NewEvent(ctx, event_bus.TableChanged, event_bus.TableChangedData{Table: t.schema.Table}))
	}
}

// quoteIdent double-quotes an identifier so reserved words like "end" stay
// usable as column names.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

func quoteIdents(names []string) []string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = quoteIdent(name)
	}
	return quoted
}

func rowArgs(row []string) []any {
	args := make([]any, len(row))
	for i, v := range row {
		args[i] = v
	}
	return args
}
