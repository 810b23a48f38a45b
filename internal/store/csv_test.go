package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/event_bus"
)

type testRecord struct {
	Id   string
	Name string
	Note string
}

func testSchema() Schema[testRecord] {
	return Schema[testRecord]{
		Table:   "test",
		Columns: []string{"id", "name", "note"},
		Id:      func(r testRecord) string { return r.Id },
		Encode:  func(r testRecord) []string { return []string{r.Id, r.Name, r.Note} },
		Decode: func(row []string) (testRecord, error) {
			return testRecord{Id: row[0], Name: row[1], Note: row[2]}, nil
		},
	}
}

func TestCsvTable(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file reads as empty table", func(t *testing.T) {
		table := NewCsvTable(testSchema(), t.TempDir(), nil)

		records, err := table.LoadAll(ctx)

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("append then load round trip", func(t *testing.T) {
		dir := t.TempDir()
		table := NewCsvTable(testSchema(), dir, nil)

		require.NoError(t, table.Append(ctx, testRecord{Id: "1", Name: "first"}, testRecord{Id: "2", Name: "second"}))

		records, err := table.LoadAll(ctx)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "first", records[0].Name)

		// The file carries a header row.
		content, err := os.ReadFile(filepath.Join(dir, "test.csv"))
		require.NoError(t, err)
		assert.Equal(t, "id,name,note\n1,first,\n2,second,\n", string(content))
	})

	t.Run("a fresh table sees what another instance persisted", func(t *testing.T) {
		dir := t.TempDir()
		first := NewCsvTable(testSchema(), dir, nil)
		require.NoError(t, first.Append(ctx, testRecord{Id: "1", Name: "first"}))

		second := NewCsvTable(testSchema(), dir, nil)
		records, err := second.LoadAll(ctx)

		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("update replaces the matching record only", func(t *testing.T) {
		table := NewCsvTable(testSchema(), t.TempDir(), nil)
		require.NoError(t, table.Append(ctx, testRecord{Id: "1", Name: "first"}, testRecord{Id: "2", Name: "second"}))

		ok, err := table.Update(ctx, testRecord{Id: "2", Name: "changed"})

		require.NoError(t, err)
		assert.True(t, ok)
		records, _ := table.LoadAll(ctx)
		require.Len(t, records, 2)
		assert.Equal(t, "first", records[0].Name)
		assert.Equal(t, "changed", records[1].Name)
	})

	t.Run("update without id fails", func(t *testing.T) {
		table := NewCsvTable(testSchema(), t.TempDir(), nil)

		_, err := table.Update(ctx, testRecord{Name: "anonymous"})

		assert.ErrorIs(t, err, ErrMissingId)
	})

	t.Run("update of unknown id reports not found", func(t *testing.T) {
		table := NewCsvTable(testSchema(), t.TempDir(), nil)
		require.NoError(t, table.Append(ctx, testRecord{Id: "1"}))

		ok, err := table.Update(ctx, testRecord{Id: "missing"})

		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		table := NewCsvTable(testSchema(), t.TempDir(), nil)
		require.NoError(t, table.Append(ctx, testRecord{Id: "1"}, testRecord{Id: "2"}))

		ok, err := table.Delete(ctx, "1")

		require.NoError(t, err)
		assert.True(t, ok)
		records, _ := table.LoadAll(ctx)
		require.Len(t, records, 1)
		assert.Equal(t, "2", records[0].Id)

		ok, err = table.Delete(ctx, "1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("replace all rewrites the table", func(t *testing.T) {
		table := NewCsvTable(testSchema(), t.TempDir(), nil)
		require.NoError(t, table.Append(ctx, testRecord{Id: "1"}, testRecord{Id: "2"}))

		require.NoError(t, table.ReplaceAll(ctx, []testRecord{{Id: "3"}}))

		records, _ := table.LoadAll(ctx)
		require.Len(t, records, 1)
		assert.Equal(t, "3", records[0].Id)
	})

	t.Run("older files load after the schema gains a column", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "test.csv"), []byte("id,name\n1,old\n"), 0644))
		table := NewCsvTable(testSchema(), dir, nil)

		records, err := table.LoadAll(ctx)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "old", records[0].Name)
		assert.Empty(t, records[0].Note)
	})

	t.Run("column order in the file does not matter", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "test.csv"), []byte("note,id,name\na note,1,first\n"), 0644))
		table := NewCsvTable(testSchema(), dir, nil)

		records, err := table.LoadAll(ctx)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, testRecord{Id: "1", Name: "first", Note: "a note"}, records[0])
	})

	t.Run("mutations publish a table changed event", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		var changed []string
		bus.Subscribe(event_bus.TableChanged, func(event event_bus.Event) {
			changed = append(changed, event.Data.(event_bus.TableChangedData).Table)
		})
		table := NewCsvTable(testSchema(), t.TempDir(), bus)

		require.NoError(t, table.Append(ctx, testRecord{Id: "1"}))
		_, err := table.Delete(ctx, "1")
		require.NoError(t, err)

		assert.Equal(t, []string{"test", "test"}, changed)
	})
}
