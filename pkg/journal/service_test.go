package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/utils"
)

var ctx = context.Background()

func setup(t *testing.T) *ServiceImpl {
	repo := NewRepositoryStub()
	service := NewService(repo)
	service.clock = &utils.MockClock{FixedNow: time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC)}
	t.Cleanup(repo.Reset)
	return service
}

func TestService_Create(t *testing.T) {
	t.Run("assigns id, timestamps, and defaults the date to today", func(t *testing.T) {
		service := setup(t)

		created, err := service.Create(ctx, Entry{Body: "Threw six mugs, trimmed four."})

		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), created.Date)
		assert.Equal(t, time.Date(2024, 3, 10, 20, 0, 0, 0, time.UTC), created.CreatedAt)
	})

	t.Run("rejects an empty body", func(t *testing.T) {
		service := setup(t)

		_, err := service.Create(ctx, Entry{Body: "  "})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects an unknown mood", func(t *testing.T) {
		service := setup(t)

		_, err := service.Create(ctx, Entry{Body: "Kiln opening day", Mood: "Ecstatic"})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestService_List(t *testing.T) {
	seed := func(t *testing.T, service *ServiceImpl) {
		entries := []Entry{
			{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Body: "Glaze tests for the spring sale", Mood: "Inspired", Tags: []string{"glaze", "tests"}},
			{Date: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), Body: "Warped plates out of the bisque", Mood: "Frustrated"},
			{Date: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), Body: "Wedging practice", Mood: "Neutral"},
		}
		for _, e := range entries {
			_, err := service.Create(ctx, e)
			require.NoError(t, err)
		}
	}

	t.Run("narrows to the selected month, newest first", func(t *testing.T) {
		service := setup(t)
		seed(t, service)
		month := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

		entries, err := service.List(ctx, Filter{Month: &month})

		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "Warped plates out of the bisque", entries[0].Body)
		assert.Equal(t, "Glaze tests for the spring sale", entries[1].Body)
	})

	t.Run("filters by mood", func(t *testing.T) {
		service := setup(t)
		seed(t, service)

		entries, err := service.List(ctx, Filter{Mood: "Frustrated"})

		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("searches tags as well as text", func(t *testing.T) {
		service := setup(t)
		seed(t, service)

		entries, err := service.List(ctx, Filter{Search: "GLAZE"})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Glaze tests for the spring sale", entries[0].Body)
	})
}

func TestService_UpdateAndDelete(t *testing.T) {
	service := setup(t)
	created, err := service.Create(ctx, Entry{Body: "First pull on the new wheel"})
	require.NoError(t, err)

	created.Mood = "Content"
	ok, err := service.Update(ctx, created)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.Delete(ctx, created.Id)
	require.NoError(t, err)
	assert.True(t, ok)

	entries, err := service.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
