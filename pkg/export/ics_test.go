package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/creekroadpottery/PotteryCalendarApp/pkg/event"
)

func TestRenderIcs(t *testing.T) {
	renderer := NewIcsRenderer()

	events := []event.Event{
		{
			Id:       "occ-1",
			Title:    "Glaze firing Cone 6",
			Category: "Studio",
			TaskType: "Glaze Firing",
			Start:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
			End:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
			Location: "Kiln room",
		},
	}

	got := renderer.Render(events)

	assert.Contains(t, got, "BEGIN:VCALENDAR")
	assert.Contains(t, got, "UID:occ-1")
	assert.Contains(t, got, "SUMMARY:Glaze firing Cone 6")
	assert.Contains(t, got, "LOCATION:Kiln room")
	assert.Contains(t, got, "CATEGORIES:Studio")
	assert.Contains(t, got, "DTSTART:20240101T090000Z")
	assert.Contains(t, got, "END:VCALENDAR")
}
