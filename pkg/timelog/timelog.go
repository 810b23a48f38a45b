package timelog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/store"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Entry is one logged block of studio time.
type Entry struct {
	Id        string
	Date      time.Time
	TaskType  string
	Minutes   int
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DailySummary holds logged minutes per task type for one day.
type DailySummary struct {
	Date    time.Time
	Minutes map[string]int
	Total   int
}

// WeeklySummary covers the Monday to Sunday week containing the
// requested date.
type WeeklySummary struct {
	StartDate time.Time
	EndDate   time.Time
	Days      []DailySummary
	TaskTypes []string
	Totals    map[string]int
	Total     int
}

func Schema() store.Schema[Entry] {
	return store.Schema[Entry]{
		Table:   "timelog",
		Columns: []string{"id", "date", "task_type", "minutes", "notes", "created_at", "updated_at"},
		Id:      func(e Entry) string { return e.Id },
		Encode: func(e Entry) []string {
			return []string{
				e.Id,
				e.Date.Format(DateLayout),
				e.TaskType,
				strconv.Itoa(e.Minutes),
				e.Notes,
				formatTimestamp(e.CreatedAt),
				formatTimestamp(e.UpdatedAt),
			}
		},
		Decode: func(row []string) (Entry, error) {
			date, err := time.Parse(DateLayout, row[1])
			if err != nil {
				return Entry{}, fmt.Errorf("invalid date %q: %w", row[1], err)
			}
			minutes, err := strconv.Atoi(row[3])
			if err != nil {
				return Entry{}, fmt.Errorf("invalid minutes %q: %w", row[3], err)
			}
			return Entry{
				Id:        row[0],
				Date:      date,
				TaskType:  row[2],
				Minutes:   minutes,
				Notes:     row[4],
				CreatedAt: parseTimestamp(row[5]),
				UpdatedAt: parseTimestamp(row[6]),
			}, nil
		},
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(TimestampLayout)
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
