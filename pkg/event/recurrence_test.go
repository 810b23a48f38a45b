package event

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prototypeEvent() Event {
	return Event{
		Id:       "proto-id",
		Title:    "Glaze firing Cone 6",
		Category: "Studio",
		TaskType: "Glaze Firing",
		Start:    time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Location: "Studio",
		Notes:    "Load the big kiln",
	}
}

func TestExpand_NoneFrequency(t *testing.T) {
	t.Run("returns the prototype verbatim", func(t *testing.T) {
		proto := prototypeEvent()

		occurrences, err := Expand(proto, Recurrence{Frequency: FrequencyNone})

		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, proto, occurrences[0])
	})

	t.Run("does not mint a new id", func(t *testing.T) {
		proto := prototypeEvent()

		occurrences, err := Expand(proto, Recurrence{Frequency: FrequencyNone})

		require.NoError(t, err)
		assert.Equal(t, "proto-id", occurrences[0].Id)
	})

	t.Run("empty frequency behaves like None", func(t *testing.T) {
		proto := prototypeEvent()

		occurrences, err := Expand(proto, Recurrence{})

		require.NoError(t, err)
		require.Len(t, occurrences, 1)
		assert.Equal(t, proto, occurrences[0])
	})
}

func TestExpand_WeeklyWithCount(t *testing.T) {
	proto := prototypeEvent()

	occurrences, err := Expand(proto, Recurrence{Frequency: "Weekly", Count: 3})

	require.NoError(t, err)
	require.Len(t, occurrences, 3)

	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), occurrences[0].Start)
	assert.Equal(t, time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC), occurrences[1].Start)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), occurrences[2].Start)

	for _, o := range occurrences {
		assert.Equal(t, 3*time.Hour, o.End.Sub(o.Start))
	}

	assert.Equal(t, "Glaze firing Cone 6", occurrences[0].Title)
	assert.Equal(t, "Glaze firing Cone 6 (2)", occurrences[1].Title)
	assert.Equal(t, "Glaze firing Cone 6 (3)", occurrences[2].Title)
}

func TestExpand_DailyWithUntil(t *testing.T) {
	t.Run("until date itself is inclusive", func(t *testing.T) {
		proto := prototypeEvent()
		until := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

		occurrences, err := Expand(proto, Recurrence{Frequency: "Daily", Until: &until})

		require.NoError(t, err)
		require.Len(t, occurrences, 3)
		assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), occurrences[0].Start)
		assert.Equal(t, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC), occurrences[1].Start)
		assert.Equal(t, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), occurrences[2].Start)
	})

	t.Run("no occurrence starts after the until date", func(t *testing.T) {
		proto := prototypeEvent()
		until := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

		occurrences, err := Expand(proto, Recurrence{Frequency: "Daily", Until: &until})

		require.NoError(t, err)
		require.NotEmpty(t, occurrences)
		endOfUntil := time.Date(2024, 1, 10, 23, 59, 59, 0, time.UTC)
		for _, o := range occurrences {
			assert.False(t, o.Start.After(endOfUntil))
		}
	})
}

func TestExpand_CountAndUntilTogether(t *testing.T) {
	proto := prototypeEvent()

	t.Run("count wins when it is the earlier bound", func(t *testing.T) {
		until := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
		occurrences, err := Expand(proto, Recurrence{Frequency: "Daily", Count: 2, Until: &until})

		require.NoError(t, err)
		assert.Len(t, occurrences, 2)
	})

	t.Run("until wins when it is the earlier bound", func(t *testing.T) {
		until := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		occurrences, err := Expand(proto, Recurrence{Frequency: "Daily", Count: 100, Until: &until})

		require.NoError(t, err)
		assert.Len(t, occurrences, 2)
	})
}

func TestExpand_ZeroCountMeansNoBound(t *testing.T) {
	t.Run("falls back to until", func(t *testing.T) {
		proto := prototypeEvent()
		until := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		occurrences, err := Expand(proto, Recurrence{Frequency: "Monthly", Count: 0, Until: &until})

		require.NoError(t, err)
		// Jan 1, Feb 1, Mar 1: the until bound takes over.
		assert.Len(t, occurrences, 3)
	})

	t.Run("falls back to the safety cap without until", func(t *testing.T) {
		proto := prototypeEvent()

		occurrences, err := Expand(proto, Recurrence{Frequency: "Daily", Count: 0})

		require.NoError(t, err)
		assert.Len(t, occurrences, maxOccurrences)
	})
}

func TestExpand_InvalidInput(t *testing.T) {
	t.Run("unrecognized frequency", func(t *testing.T) {
		proto := prototypeEvent()

		_, err := Expand(proto, Recurrence{Frequency: "Biweekly", Count: 3})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidRecurrence)
	})

	t.Run("negative count", func(t *testing.T) {
		proto := prototypeEvent()

		_, err := Expand(proto, Recurrence{Frequency: "Weekly", Count: -1})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidBound)
	})
}

func TestExpand_DurationInvariance(t *testing.T) {
	// Month lengths differ; the duration must not.
	proto := prototypeEvent()
	proto.Start = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	proto.End = time.Date(2024, 1, 16, 14, 30, 0, 0, time.UTC)
	duration := proto.End.Sub(proto.Start)

	occurrences, err := Expand(proto, Recurrence{Frequency: "Monthly", Count: 12})

	require.NoError(t, err)
	require.Len(t, occurrences, 12)
	for i, o := range occurrences {
		assert.Equal(t, duration, o.End.Sub(o.Start), "occurrence %d", i)
	}
}

func TestExpand_Identifiers(t *testing.T) {
	proto := prototypeEvent()

	occurrences, err := Expand(proto, Recurrence{Frequency: "Weekly", Count: 5})

	require.NoError(t, err)
	seen := map[string]bool{}
	for _, o := range occurrences {
		assert.NotEqual(t, proto.Id, o.Id)
		assert.False(t, seen[o.Id], "duplicate id %s", o.Id)
		seen[o.Id] = true
	}
}

func TestExpand_Ordering(t *testing.T) {
	proto := prototypeEvent()

	occurrences, err := Expand(proto, Recurrence{Frequency: "Yearly", Count: 10})

	require.NoError(t, err)
	for i := 1; i < len(occurrences); i++ {
		assert.True(t, occurrences[i-1].Start.Before(occurrences[i].Start))
	}
}

func TestExpand_Titles(t *testing.T) {
	proto := prototypeEvent()

	occurrences, err := Expand(proto, Recurrence{Frequency: "Daily", Count: 4})

	require.NoError(t, err)
	assert.Equal(t, proto.Title, occurrences[0].Title)
	for i := 1; i < len(occurrences); i++ {
		assert.Equal(t, fmt.Sprintf("%s (%d)", proto.Title, i+1), occurrences[i].Title)
	}
}

func TestExpand_NoAliasing(t *testing.T) {
	proto := prototypeEvent()

	occurrences, err := Expand(proto, Recurrence{Frequency: "Weekly", Count: 2})

	require.NoError(t, err)
	occurrences[0].Notes = "changed"
	assert.Equal(t, "Load the big kiln", occurrences[1].Notes)
	assert.Equal(t, "Load the big kiln", proto.Notes)
}
