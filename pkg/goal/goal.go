package goal

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

// Goal is one studio goal with manual progress tracking.
type Goal struct {
	Id          string
	Title       string
	Description string
	TargetDate  time.Time
	Progress    int // 0..100 percent
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func Schema() store.Schema[Goal] {
	return store.Schema[Goal]{
		Table:   "goal",
		Columns: []string{"id", "title", "description", "target_date", "progress", "completed", "created_at", "updated_at"},
		Id:      func(g Goal) string { return g.Id },
		Encode: func(g Goal) []string {
			targetDate := ""
			if !g.TargetDate.IsZero() {
				targetDate = g.TargetDate.Format(DateLayout)
			}
			return []string{
				g.Id,
				g.Title,
				g.Description,
				targetDate,
				strconv.Itoa(g.Progress),
				strconv.FormatBool(g.Completed),
				formatTimestamp(g.CreatedAt),
				formatTimestamp(g.UpdatedAt),
			}
		},
		Decode: func(row []string) (Goal, error) {
			var targetDate time.Time
			if row[3] != "" {
				parsed, err := time.Parse(DateLayout, row[3])
				if err != nil {
					return Goal{}, fmt.Errorf("invalid target date %q: %w", row[3], err)
				}
				targetDate = parsed
			}
			progress := 0
			if row[4] != "" {
				parsed, err := strconv.Atoi(row[4])
				if err != nil {
					return Goal{}, fmt.Errorf("invalid progress %q: %w", row[4], err)
				}
				progress = parsed
			}
			return Goal{
				Id:          row[0],
				Title:       row[1],
				Description: row[2],
				TargetDate:  targetDate,
				Progress:    progress,
				Completed:   row[5] == "true",
				CreatedAt:   parseTimestamp(row[6]),
				UpdatedAt:   parseTimestamp(row[7]),
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
