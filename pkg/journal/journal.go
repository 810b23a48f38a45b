package journal

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/store"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

var Moods = []string{"Inspired", "Content", "Neutral", "Frustrated", "Drained"}

// Entry is one studio journal entry.
type Entry struct {
	Id        string
	Date      time.Time
	Title     string
	Body      string
	Mood      string
	Tags      []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func IsValidMood(mood string) bool {
	return slices.Contains(Moods, mood)
}

func Schema() store.Schema[Entry] {
	return store.Schema[Entry]{
		Table:   "journal",
		Columns: []string{"id", "date", "title", "body", "mood", "tags", "created_at", "updated_at"},
		Id:      func(e Entry) string { return e.Id },
		Encode: func(e Entry) []string {
			return []string{
				e.Id,
				e.Date.Format(DateLayout),
				e.Title,
				e.Body,
				e.Mood,
				strings.Join(e.Tags, ","),
				formatTimestamp(e.CreatedAt),
				formatTimestamp(e.UpdatedAt),
			}
		},
		Decode: func(row []string) (Entry, error) {
			date, err := time.Parse(DateLayout, row[1])
			if err != nil {
				return Entry{}, fmt.Errorf("invalid date %q: %w", row[1], err)
			}
			var tags []string
			if row[5] != "" {
				tags = strings.Split(row[5], ",")
			}
			return Entry{
				Id:        row[0],
				Date:      date,
				Title:     row[2],
				Body:      row[3],
				Mood:      row[4],
				Tags:      tags,
				CreatedAt: parseTimestamp(row[6]),
				UpdatedAt: parseTimestamp(row[7]),
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
