package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/utils"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("piece not found")
)

// PhotoStore is the disk-backed image collaborator.
type PhotoStore interface {
	Save(name string, data []byte) error
	Read(name string) ([]byte, error)
	Delete(name string) error
}

// Filter narrows the portfolio by status, minimum rating, and free-text
// search over title, clay body, glaze, technique, and notes.
type Filter struct {
	Status    string
	MinRating int
	Search    string
}

type Service interface {
	Create(ctx context.Context, piece Piece) (Piece, error)
	List(ctx context.Context, filter Filter) ([]Piece, error)
	Update(ctx context.Context, piece Piece) (bool, error)
	Delete(ctx context.Context, pieceId string) (bool, error)
	StorePhoto(ctx context.Context, pieceId string, photo []byte) error
	GetPhoto(ctx context.Context, pieceId string) ([]byte, error)
	DeletePhoto(ctx context.Context, pieceId string) error
}

type ServiceImpl struct {
	repo   Repository
	photos PhotoStore
	clock  utils.Clock
}

func NewService(repo Repository, photos PhotoStore) *ServiceImpl {
	return &ServiceImpl{repo: repo, photos: photos, clock: utils.SystemClock{}}
}

func (s *ServiceImpl) Create(ctx context.Context, piece Piece) (Piece, error) {
	if err := validate(piece); err != nil {
		return Piece{}, err
	}
	now := s.clock.Now()
	piece.Id = uuid.NewString()
	piece.Title = strings.TrimSpace(piece.Title)
	piece.CreatedAt = now
	piece.UpdatedAt = now
	if piece.Status == "" {
		piece.Status = "In Progress"
	}
	if err := s.repo.Store(ctx, piece); err != nil {
		return Piece{}, fmt.Errorf("failed to store piece: %w", err)
	}
	return piece, nil
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter) ([]Piece, error) {
	pieces, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	filtered := make([]Piece, 0, len(pieces))
	for _, p := range pieces {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.MinRating > 0 && p.Rating < filter.MinRating {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		filtered = append(filtered, p)
	}

	// Most recently finished first; unfinished pieces sort last by creation.
	sort.Slice(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		if a.FinishedOn.IsZero() != b.FinishedOn.IsZero() {
			return !a.FinishedOn.IsZero()
		}
		if !a.FinishedOn.Equal(b.FinishedOn) {
			return a.FinishedOn.After(b.FinishedOn)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return filtered, nil
}

func (s *ServiceImpl) Update(ctx context.Context, piece Piece) (bool, error) {
	if err := validate(piece); err != nil {
		return false, err
	}
	piece.UpdatedAt = s.clock.Now()
	return s.repo.Update(ctx, piece)
}

func (s *ServiceImpl) Delete(ctx context.Context, pieceId string) (bool, error) {
	piece, err := s.find(ctx, pieceId)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if piece.PhotoPath != "" {
		if err := s.photos.Delete(piece.PhotoPath); err != nil {
			log.Errorf("failed to delete photo of piece %s: %v", pieceId, err)
		}
	}
	return s.repo.Delete(ctx, pieceId)
}

// StorePhoto writes the image to the photo store and records its name on
// the piece.
func (s *ServiceImpl) StorePhoto(ctx context.Context, pieceId string, photo []byte) error {
	piece, err := s.find(ctx, pieceId)
	if err != nil {
		return err
	}

	name := pieceId + ".img"
	if err := s.photos.Save(name, photo); err != nil {
		return fmt.Errorf("failed to save photo: %w", err)
	}

	piece.PhotoPath = name
	piece.UpdatedAt = s.clock.Now()
	if _, err := s.repo.Update(ctx, piece); err != nil {
		return fmt.Errorf("failed to record photo on piece: %w", err)
	}
	return nil
}

func (s *ServiceImpl) GetPhoto(ctx context.Context, pieceId string) ([]byte, error) {
	piece, err := s.find(ctx, pieceId)
	if err != nil {
		return nil, err
	}
	if piece.PhotoPath == "" {
		return nil, ErrNotFound
	}
	return s.photos.Read(piece.PhotoPath)
}

func (s *ServiceImpl) DeletePhoto(ctx context.Context, pieceId string) error {
	piece, err := s.find(ctx, pieceId)
	if err != nil {
		return err
	}
	if piece.PhotoPath == "" {
		return nil
	}
	if err := s.photos.Delete(piece.PhotoPath); err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	piece.PhotoPath = ""
	piece.UpdatedAt = s.clock.Now()
	if _, err := s.repo.Update(ctx, piece); err != nil {
		return fmt.Errorf("failed to clear photo on piece: %w", err)
	}
	return nil
}

func (s *ServiceImpl) find(ctx context.Context, pieceId string) (Piece, error) {
	pieces, err := s.repo.GetAll(ctx)
	if err != nil {
		return Piece{}, fmt.Errorf("failed to load portfolio: %w", err)
	}
	for _, p := range pieces {
		if p.Id == pieceId {
			return p, nil
		}
	}
	return Piece{}, ErrNotFound
}

func matchesSearch(p Piece, search string) bool {
	for _, field := range []string{p.Title, p.ClayBody, p.Glaze, p.Technique, p.Notes} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func validate(p Piece) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if p.Status != "" && !IsValidStatus(p.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, p.Status)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}
	return nil
}
