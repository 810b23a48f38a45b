package export

import (
	ics "github.com/arran4/golang-ical"

	"github.com/creekroadpottery/PotteryCalendarApp/pkg/event"
)

type IcsRendererImpl struct {
}

func NewIcsRenderer() *IcsRendererImpl {
	return &IcsRendererImpl{}
}

// Render serializes the given occurrences as an ICS calendar. Every
// occurrence is an independent VEVENT; recurrence series carry no shared
// identity, so no RRULE is emitted.
func (r *IcsRendererImpl) Render(events []event.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//Creek Road Pottery//Studio Calendar//EN")

	for _, e := range events {
		icsEvent := cal.AddEvent(e.Id)
		icsEvent.SetSummary(e.Title)
		if e.AllDay {
			icsEvent.SetAllDayStartAt(e.Start)
			icsEvent.SetAllDayEndAt(e.End)
		} else {
			icsEvent.SetStartAt(e.Start)
			icsEvent.SetEndAt(e.End)
		}
		if e.Location != "" {
			icsEvent.SetLocation(e.Location)
		}
		if e.Notes != "" {
			icsEvent.SetDescription(e.Notes)
		}
		icsEvent.AddProperty(ics.ComponentProperty("CATEGORIES"), e.Category)
		if !e.CreatedAt.IsZero() {
			icsEvent.SetCreatedTime(e.CreatedAt)
		}
		if !e.UpdatedAt.IsZero() {
			icsEvent.SetModifiedAt(e.UpdatedAt)
		}
	}

	return cal.Serialize()
}
