package portfolio

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/store"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

var Statuses = []string{"In Progress", "Bisque", "Glazed", "Finished", "Sold"}

// Piece is one finished (or in-progress) pot in the portfolio log.
type Piece struct {
	Id         string
	Title      string
	ClayBody   string
	Glaze      string
	Technique  string
	Status     string
	Price      decimal.Decimal
	Rating     int // 0 means unrated, otherwise 1..5
	PhotoPath  string
	FinishedOn time.Time
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func IsValidStatus(status string) bool {
	return slices.Contains(Statuses, status)
}

func Schema() store.Schema[Piece] {
	return store.Schema[Piece]{
		Table: "portfolio",
		Columns: []string{
			"id", "title", "clay_body", "glaze", "technique", "status",
			"price", "rating", "photo_path", "finished_on", "notes",
			"created_at", "updated_at",
		},
		Id: func(p Piece) string { return p.Id },
		Encode: func(p Piece) []string {
			finishedOn := ""
			if !p.FinishedOn.IsZero() {
				finishedOn = p.FinishedOn.Format(DateLayout)
			}
			return []string{
				p.Id,
				p.Title,
				p.ClayBody,
				p.Glaze,
				p.Technique,
				p.Status,
				p.Price.String(),
				strconv.Itoa(p.Rating),
				p.PhotoPath,
				finishedOn,
				p.Notes,
				formatTimestamp(p.CreatedAt),
				formatTimestamp(p.UpdatedAt),
			}
		},
		Decode: func(row []string) (Piece, error) {
			price := decimal.Zero
			if row[6] != "" {
				parsed, err := decimal.NewFromString(row[6])
				if err != nil {
					return Piece{}, fmt.Errorf("invalid price %q: %w", row[6], err)
				}
				price = parsed
			}
			rating := 0
			if row[7] != "" {
				parsed, err := strconv.Atoi(row[7])
				if err != nil {
					return Piece{}, fmt.Errorf("invalid rating %q: %w", row[7], err)
				}
				rating = parsed
			}
			var finishedOn time.Time
			if row[9] != "" {
				parsed, err := time.Parse(DateLayout, row[9])
				if err != nil {
					return Piece{}, fmt.Errorf("invalid finished_on %q: %w", row[9], err)
				}
				finishedOn = parsed
			}
			return Piece{
				Id:         row[0],
				Title:      row[1],
				ClayBody:   row[2],
				Glaze:      row[3],
				Technique:  row[4],
				Status:     row[5],
				Price:      price,
				Rating:     rating,
				PhotoPath:  row[8],
				FinishedOn: finishedOn,
				Notes:      row[10],
				CreatedAt:  parseTimestamp(row[11]),
				UpdatedAt:  parseTimestamp(row[12]),
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
