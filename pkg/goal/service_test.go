package goal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/utils"
)

func setupService(t *testing.T) (*ServiceImpl, *RepositoryStub, *utils.MockClock) {
	t.Helper()
	repo := NewRepositoryStub()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)}
	service := NewService(repo)
	service.clock = clock
	return service, repo, clock
}

func TestCreateGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		service, repo, clock := setupService(t)

		created, err := service.Create(ctx, Goal{Title: "Throw 100 mugs", Progress: 10})

		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, clock.Now(), created.CreatedAt)
		assert.Equal(t, clock.Now(), created.UpdatedAt)
		assert.False(t, created.Completed)

		stored, _ := repo.GetAll(ctx)
		require.Len(t, stored, 1)
		assert.Equal(t, created, stored[0])
	})

	t.Run("full progress marks the goal completed", func(t *testing.T) {
		service, _, _ := setupService(t)

		created, err := service.Create(ctx, Goal{Title: "Master pulling handles", Progress: 100})

		require.NoError(t, err)
		assert.True(t, created.Completed)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.Create(ctx, Goal{Title: "  "})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects progress outside 0..100", func(t *testing.T) {
		service, _, _ := setupService(t)

		_, err := service.Create(ctx, Goal{Title: "Goal", Progress: 101})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = service.Create(ctx, Goal{Title: "Goal", Progress: -1})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestListGoals(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by completion", func(t *testing.T) {
		service, _, _ := setupService(t)
		mustCreate(t, service, Goal{Title: "Done", Progress: 100})
		mustCreate(t, service, Goal{Title: "Open", Progress: 40})

		completed := true
		goals, err := service.List(ctx, Filter{Completed: &completed})

		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, "Done", goals[0].Title)
	})

	t.Run("open goals sort before completed, nearest target first", func(t *testing.T) {
		service, _, _ := setupService(t)
		mustCreate(t, service, Goal{Title: "Done", Progress: 100})
		mustCreate(t, service, Goal{Title: "No deadline"})
		mustCreate(t, service, Goal{Title: "June", TargetDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)})
		mustCreate(t, service, Goal{Title: "May", TargetDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)})

		goals, err := service.List(ctx, Filter{})

		require.NoError(t, err)
		require.Len(t, goals, 4)
		assert.Equal(t, "May", goals[0].Title)
		assert.Equal(t, "June", goals[1].Title)
		assert.Equal(t, "No deadline", goals[2].Title)
		assert.Equal(t, "Done", goals[3].Title)
	})

	t.Run("search matches title and description", func(t *testing.T) {
		service, _, _ := setupService(t)
		mustCreate(t, service, Goal{Title: "Glaze chemistry", Description: "learn line blends"})
		mustCreate(t, service, Goal{Title: "Wheel practice"})

		goals, err := service.List(ctx, Filter{Search: "BLEND"})

		require.NoError(t, err)
		require.Len(t, goals, 1)
		assert.Equal(t, "Glaze chemistry", goals[0].Title)
	})
}

func TestUpdateGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("touches updated at and completes at full progress", func(t *testing.T) {
		service, repo, clock := setupService(t)
		created := mustCreate(t, service, Goal{Title: "Goal", Progress: 50})
		clock.SetNow(clock.Now().Add(time.Hour))

		created.Progress = 100
		ok, err := service.Update(ctx, created)

		require.NoError(t, err)
		assert.True(t, ok)
		stored, _ := repo.GetAll(ctx)
		require.Len(t, stored, 1)
		assert.True(t, stored[0].Completed)
		assert.Equal(t, clock.Now(), stored[0].UpdatedAt)
		assert.Equal(t, created.CreatedAt, stored[0].CreatedAt)
	})

	t.Run("reports missing goal", func(t *testing.T) {
		service, _, _ := setupService(t)

		ok, err := service.Update(ctx, Goal{Id: "missing", Title: "Goal"})

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDeleteGoal(t *testing.T) {
	ctx := context.Background()
	service, repo, _ := setupService(t)
	created := mustCreate(t, service, Goal{Title: "Goal"})

	ok, err := service.Delete(ctx, created.Id)

	require.NoError(t, err)
	assert.True(t, ok)
	stored, _ := repo.GetAll(ctx)
	assert.Empty(t, stored)

	ok, err = service.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func mustCreate(t *testing.T, service *ServiceImpl, goal Goal) Goal {
	t.Helper()
	created, err := service.Create(context.Background(), goal)
	require.NoError(t, err)
	return created
}
