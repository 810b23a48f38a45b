package event

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/store"
)

// Layouts for naive local date-times. Start/end carry minute precision,
// created/updated carry seconds.
const (
	DateTimeLayout  = "2006-01-02 15:04"
	TimestampLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
)

var Categories = []string{"Studio", "Community", "Public"}

var TaskTypes = []string{
	"Throwing", "Trimming", "Glazing", "Bisque Firing", "Glaze Firing",
	"Inventory", "Delivery", "Workshop", "Show", "Open Studio",
	"Drop Release", "Meeting", "Other",
}

type Event struct {
	Id        string
	Title     string
	Category  string
	TaskType  string
	Start     time.Time
	End       time.Time
	AllDay    bool
	Location  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration is the prototype duration carried to every occurrence.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

func IsValidCategory(category string) bool {
	return slices.Contains(Categories, category)
}

func IsValidTaskType(taskType string) bool {
	return slices.Contains(TaskTypes, taskType)
}

// Schema maps Event onto its tabular representation.
func Schema() store.Schema[Event] {
	return store.Schema[Event]{
		Table: "event",
		Columns: []string{
			"id", "title", "category", "task_type", "start", "end",
			"all_day", "location", "notes", "created_at", "updated_at",
		},
		Id: func(e Event) string { return e.Id },
		Encode: func(e Event) []string {
			return []string{
				e.Id,
				e.Title,
				e.Category,
				e.TaskType,
				e.Start.Format(DateTimeLayout),
				e.End.Format(DateTimeLayout),
				strconv.FormatBool(e.AllDay),
				e.Location,
				e.Notes,
				formatTimestamp(e.CreatedAt),
				formatTimestamp(e.UpdatedAt),
			}
		},
		Decode: func(row []string) (Event, error) {
			start, err := time.Parse(DateTimeLayout, row[4])
			if err != nil {
				return Event{}, fmt.Errorf("invalid start %q: %w", row[4], err)
			}
			end, err := time.Parse(DateTimeLayout, row[5])
			if err != nil {
				return Event{}, fmt.Errorf("invalid end %q: %w", row[5], err)
			}
			allDay, _ := strconv.ParseBool(row[6])
			return Event{
				Id:        row[0],
				Title:     row[1],
				Category:  row[2],
				TaskType:  row[3],
				Start:     start,
				End:       end,
				AllDay:    allDay,
				Location:  row[7],
				Notes:     row[8],
				CreatedAt: parseTimestamp(row[9]),
				UpdatedAt: parseTimestamp(row[10]),
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
