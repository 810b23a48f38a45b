package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/utils"
)

type photoStoreStub struct {
	files map[string][]byte
}

func newPhotoStoreStub() *photoStoreStub {
	return &photoStoreStub{files: map[string][]byte{}}
}

func (s *photoStoreStub) Save(name string, data []byte) error {
	s.files[name] = data
	return nil
}

func (s *photoStoreStub) Read(name string) ([]byte, error) {
	data, ok := s.files[name]
	if !ok {
		return nil, errors.New("no such photo")
	}
	return data, nil
}

func (s *photoStoreStub) Delete(name string) error {
	delete(s.files, name)
	return nil
}

func setupService(t *testing.T) (*ServiceImpl, *RepositoryStub, *photoStoreStub, *utils.MockClock) {
	t.Helper()
	repo := NewRepositoryStub()
	photos := newPhotoStoreStub()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 2, 10, 14, 0, 0, 0, time.UTC)}
	service := NewService(repo, photos)
	service.clock = clock
	return service, repo, photos, clock
}

func TestCreatePiece(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id, timestamps and default status", func(t *testing.T) {
		service, repo, _, _ := setupService(t)

		created, err := service.Create(ctx, Piece{Title: "  Tea bowl  "})

		require.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, "Tea bowl", created.Title)
		assert.Equal(t, "In Progress", created.Status)
		assert.Equal(t, time.Date(2024, 2, 10, 14, 0, 0, 0, time.UTC), created.CreatedAt)
		assert.Equal(t, created.CreatedAt, created.UpdatedAt)

		stored, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, created, stored[0])
	})

	t.Run("rejects empty title", func(t *testing.T) {
		service, repo, _, _ := setupService(t)

		_, err := service.Create(ctx, Piece{Title: "   "})

		assert.ErrorIs(t, err, ErrValidation)
		stored, _ := repo.GetAll(ctx)
		assert.Empty(t, stored)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		service, _, _, _ := setupService(t)

		_, err := service.Create(ctx, Piece{Title: "Vase", Status: "Broken"})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		service, _, _, _ := setupService(t)

		_, err := service.Create(ctx, Piece{Title: "Vase", Price: decimal.NewFromInt(-5)})

		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects rating above 5", func(t *testing.T) {
		service, _, _, _ := setupService(t)

		_, err := service.Create(ctx, Piece{Title: "Vase", Rating: 6})

		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestListPieces(t *testing.T) {
	ctx := context.Background()

	t.Run("filters by status and minimum rating", func(t *testing.T) {
		service, _, _, _ := setupService(t)
		mustCreate(t, service, Piece{Title: "Mug", Status: "Sold", Rating: 5})
		mustCreate(t, service, Piece{Title: "Bowl", Status: "Sold", Rating: 2})
		mustCreate(t, service, Piece{Title: "Plate", Status: "Finished", Rating: 4})

		pieces, err := service.List(ctx, Filter{Status: "Sold", MinRating: 3})

		require.NoError(t, err)
		require.Len(t, pieces, 1)
		assert.Equal(t, "Mug", pieces[0].Title)
	})

	t.Run("search is case-insensitive over glaze and notes", func(t *testing.T) {
		service, _, _, _ := setupService(t)
		mustCreate(t, service, Piece{Title: "Mug", Glaze: "Shino"})
		mustCreate(t, service, Piece{Title: "Bowl", Notes: "reduction fired shino test"})
		mustCreate(t, service, Piece{Title: "Plate", Glaze: "Celadon"})

		pieces, err := service.List(ctx, Filter{Search: "SHINO"})

		require.NoError(t, err)
		assert.Len(t, pieces, 2)
	})

	t.Run("finished pieces sort first, newest finish date on top", func(t *testing.T) {
		service, _, _, clock := setupService(t)
		mustCreate(t, service, Piece{Title: "Unfinished"})
		older := mustCreate(t, service, Piece{Title: "Older", FinishedOn: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)})
		newer := mustCreate(t, service, Piece{Title: "Newer", FinishedOn: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)})
		clock.SetNow(clock.Now().Add(time.Hour))

		pieces, err := service.List(ctx, Filter{})

		require.NoError(t, err)
		require.Len(t, pieces, 3)
		assert.Equal(t, newer.Id, pieces[0].Id)
		assert.Equal(t, older.Id, pieces[1].Id)
		assert.Equal(t, "Unfinished", pieces[2].Title)
	})
}

func TestUpdatePiece(t *testing.T) {
	ctx := context.Background()

	t.Run("touches updated at and keeps created at", func(t *testing.T) {
		service, repo, _, clock := setupService(t)
		created := mustCreate(t, service, Piece{Title: "Mug"})
		clock.SetNow(clock.Now().Add(2 * time.Hour))

		created.Glaze = "Tenmoku"
		ok, err := service.Update(ctx, created)

		require.NoError(t, err)
		assert.True(t, ok)
		stored, _ := repo.GetAll(ctx)
		require.Len(t, stored, 1)
		assert.Equal(t, "Tenmoku", stored[0].Glaze)
		assert.Equal(t, created.CreatedAt, stored[0].CreatedAt)
		assert.Equal(t, clock.Now(), stored[0].UpdatedAt)
	})

	t.Run("reports missing piece", func(t *testing.T) {
		service, _, _, _ := setupService(t)

		ok, err := service.Update(ctx, Piece{Id: "missing", Title: "Mug"})

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestDeletePiece(t *testing.T) {
	ctx := context.Background()

	t.Run("removes piece and its photo", func(t *testing.T) {
		service, repo, photos, _ := setupService(t)
		created := mustCreate(t, service, Piece{Title: "Mug"})
		require.NoError(t, service.StorePhoto(ctx, created.Id, []byte{0x01}))

		ok, err := service.Delete(ctx, created.Id)

		require.NoError(t, err)
		assert.True(t, ok)
		stored, _ := repo.GetAll(ctx)
		assert.Empty(t, stored)
		assert.Empty(t, photos.files)
	})

	t.Run("reports missing piece", func(t *testing.T) {
		service, _, _, _ := setupService(t)

		ok, err := service.Delete(ctx, "missing")

		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPiecePhotos(t *testing.T) {
	ctx := context.Background()

	t.Run("store then read round trip", func(t *testing.T) {
		service, repo, _, _ := setupService(t)
		created := mustCreate(t, service, Piece{Title: "Mug"})

		require.NoError(t, service.StorePhoto(ctx, created.Id, []byte{0xCA, 0xFE}))

		stored, _ := repo.GetAll(ctx)
		require.Len(t, stored, 1)
		assert.Equal(t, created.Id+".img", stored[0].PhotoPath)

		photo, err := service.GetPhoto(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xCA, 0xFE}, photo)
	})

	t.Run("store photo for unknown piece fails", func(t *testing.T) {
		service, _, _, _ := setupService(t)

		err := service.StorePhoto(ctx, "missing", []byte{0x01})

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get photo when none uploaded", func(t *testing.T) {
		service, _, _, _ := setupService(t)
		created := mustCreate(t, service, Piece{Title: "Mug"})

		_, err := service.GetPhoto(ctx, created.Id)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete photo clears the path", func(t *testing.T) {
		service, repo, photos, _ := setupService(t)
		created := mustCreate(t, service, Piece{Title: "Mug"})
		require.NoError(t, service.StorePhoto(ctx, created.Id, []byte{0x01}))

		require.NoError(t, service.DeletePhoto(ctx, created.Id))

		stored, _ := repo.GetAll(ctx)
		require.Len(t, stored, 1)
		assert.Empty(t, stored[0].PhotoPath)
		assert.Empty(t, photos.files)
	})
}

func mustCreate(t *testing.T, service *ServiceImpl, piece Piece) Piece {
	t.Helper()
	created, err := service.Create(context.Background(), piece)
	require.NoError(t, err)
	return created
}
