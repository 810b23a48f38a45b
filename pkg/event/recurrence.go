package event

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
)

var (
	ErrInvalidRecurrence = errors.New("invalid recurrence frequency")
	ErrInvalidBound      = errors.New("invalid recurrence bound")
)

// FrequencyNone disables recurrence generation entirely.
const FrequencyNone = "None"

var frequencies = map[string]rrule.Frequency{
	"Daily":   rrule.DAILY,
	"Weekly":  rrule.WEEKLY,
	"Monthly": rrule.MONTHLY,
	"Yearly":  rrule.YEARLY,
}

// Frequencies lists the recognized frequency tags in menu order.
var Frequencies = []string{FrequencyNone, "Daily", "Weekly", "Monthly", "Yearly"}

// maxOccurrences caps generation when neither count nor until is supplied.
// The rule generator would otherwise enumerate indefinitely.
const maxOccurrences = 1000

// Recurrence is the repetition specification attached to a new event.
// Count and Until may both be supplied; generation stops at whichever
// bound is reached first. A zero Count means "no count bound".
type Recurrence struct {
	Frequency string
	Count     int
	Until     *time.Time
}

// Expand materializes the ordered sequence of concrete occurrences implied
// by the prototype event and the recurrence specification.
//
// With frequency None the prototype is returned verbatim as the only
// element: same id, same title, same times. Otherwise anchors are generated
// from prototype.Start advancing by the chosen calendar unit, and every
// occurrence is an independent copy of the prototype with a fresh id, the
// anchor as start, and the prototype's exact duration. Occurrence titles
// beyond the first get " (N)" appended, N being the 1-indexed position.
//
// Until is inclusive of the date it names: it is normalized to 23:59:59 of
// that day before bounding the sequence.
func Expand(prototype Event, rec Recurrence) ([]Event, error) {
	if rec.Frequency == "" || rec.Frequency == FrequencyNone {
		return []Event{prototype}, nil
	}

	freq, ok := frequencies[rec.Frequency]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRecurrence, rec.Frequency)
	}
	if rec.Count < 0 {
		return nil, fmt.Errorf("%w: count must not be negative, got %d", ErrInvalidBound, rec.Count)
	}

	opts := rrule.ROption{
		Freq:    freq,
		Dtstart: prototype.Start,
	}
	if rec.Count > 0 {
		opts.Count = rec.Count
	}
	if rec.Until != nil {
		u := *rec.Until
		opts.Until = time.Date(u.Year(), u.Month(), u.Day(), 23, 59, 59, 0, u.Location())
	}
	if rec.Count == 0 && rec.Until == nil {
		opts.Count = maxOccurrences
	}

	rule, err := rrule.NewRRule(opts)
	if err != nil {
		return nil, fmt.Errorf("could not build recurrence rule: %w", err)
	}

	duration := prototype.Duration()
	anchors := rule.All()
	occurrences := make([]Event, 0, len(anchors))
	for i, anchor := range anchors {
		occurrence := prototype
		occurrence.Id = uuid.NewString()
		occurrence.Start = anchor
		occurrence.End = anchor.Add(duration)
		if i > 0 {
			occurrence.Title = fmt.Sprintf("%s (%d)", prototype.Title, i+1)
		}
		occurrences = append(occurrences, occurrence)
	}
	return occurrences, nil
}
