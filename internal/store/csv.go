package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// CsvTable persists one table as a CSV file with a header row. The whole
// table is cached in memory after the first read; every mutation rewrites
// the file and invalidates the cache.
type CsvTable[T any] struct {
	schema Schema[T]
	path   string
	bus    *event_bus.EventBus

	mu     sync.Mutex
	cache  []T
	loaded bool
}

func NewCsvTable[T any](schema Schema[T], dataDir string, bus *event_bus.EventBus) *CsvTable[T] {
	return &CsvTable[T]{
		schema: schema,
		path:   filepath.Join(dataDir, schema.Table+".csv"),
		bus:    bus,
	}
}

func (t *CsvTable[T]) LoadAll(ctx context.Context) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.load(); err != nil {
		return nil, err
	}
	records := make([]T, len(t.cache))
	copy(records, t.cache)
	return records, nil
}

func (t *CsvTable[T]) ReplaceAll(ctx context.Context, records []T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.save(ctx, records)
}

func (t *CsvTable[T]) Append(ctx context.Context, records ...T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.load(); err != nil {
		return err
	}
	return t.save(ctx, append(t.cache, records...))
}

func (t *CsvTable[T]) Update(ctx context.Context, record T) (bool, error) {
	id := t.schema.Id(record)
	if id == "" {
		return false, ErrMissingId
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.load(); err != nil {
		return false, err
	}
	for i, existing := range t.cache {
		if t.schema.Id(existing) == id {
			records := make([]T, len(t.cache))
			copy(records, t.cache)
			records[i] = record
			return true, t.save(ctx, records)
		}
	}
	return false, nil
}

func (t *CsvTable[T]) Delete(ctx context.Context, id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.load(); err != nil {
		return false, err
	}
	records := make([]T, 0, len(t.cache))
	found := false
	for _, existing := range t.cache {
		if t.schema.Id(existing) == id {
			found = true
			continue
		}
		records = append(records, existing)
	}
	if !found {
		return false, nil
	}
	return true, t.save(ctx, records)
}

// load reads the CSV file into the cache unless it is already loaded.
// A missing file yields an empty table. Columns absent from the file are
// backfilled with empty values, so older files keep loading after the
// schema gains columns.
func (t *CsvTable[T]) load() error {
	if t.loaded {
		return nil
	}

	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			t.cache = nil
			t.loaded = true
			return nil
		}
		return fmt.Errorf("could not open %s: %w", t.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("could not read %s: %w", t.path, err)
	}
	if len(rows) == 0 {
		t.cache = nil
		t.loaded = true
		return nil
	}

	// Map schema columns onto file columns by header name.
	header := rows[0]
	indexes := make([]int, len(t.schema.Columns))
	for i, column := range t.schema.Columns {
		indexes[i] = -1
		for j, name := range header {
			if name == column {
				indexes[i] = j
				break
			}
		}
	}

	records := make([]T, 0, len(rows)-1)
	for _, row := range rows[1:] {
		projected := make([]string, len(t.schema.Columns))
		for i, idx := range indexes {
			if idx >= 0 && idx < len(row) {
				projected[i] = row[idx]
			}
		}
		record, err := t.schema.Decode(projected)
		if err != nil {
			log.Errorf("skipping malformed row in %s: %v", t.path, err)
			continue
		}
		records = append(records, record)
	}

	t.cache = records
	t.loaded = true
	return nil
}

// save rewrites the whole file and invalidates the cache, so the next read
// observes exactly what was persisted.
func (t *CsvTable[T]) save(ctx context.Context, records []T) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}

	tmp := t.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("could not create %s: %w", tmp, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(t.schema.Columns); err != nil {
		f.Close()
		return fmt.Errorf("could not write header: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(t.schema.Encode(record)); err != nil {
			f.Close()
			return fmt.Errorf("could not write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		f.Close()
		return fmt.Errorf("could not flush %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("could not close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, t.path); err != nil {
		return fmt.Errorf("could not replace %s: %w", t.path, err)
	}

	t.cache = nil
	t.loaded = false

	if t.bus != nil {
		t.bus.Publish(event_bus.NewEvent(ctx, event_bus.TableChanged, event_bus.TableChangedData{Table: t.schema.Table}))
	}
	return nil
}
