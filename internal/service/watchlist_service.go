package service

import (
	"context"
	"fmt"
	"time"

	"reelvault/internal/models"
	"reelvault/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type WatchlistService struct {
	watchlist *repository.WatchlistRepository
}

type WatchlistAddData struct {
	MovieID    int
	MovieTitle string
	PosterPath string
	Status     string
}

func NewWatchlistService(w *repository.WatchlistRepository) *WatchlistService {
	return &WatchlistService{watchlist: w}
}

func (s *WatchlistService) ListByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	status string,
) ([]models.WatchlistDoc, error) {
	if status != "" {
		if err := validateWatchlistStatus(status); err != nil {
			return nil, err
		}
	}
	return s.watchlist.FindByUser(ctx, userID, status)
}

// Add agrega una película al watchlist. Repetir (user, movie) es error.
func (s *WatchlistService) Add(
	ctx context.Context,
	ownerID primitive.ObjectID,
	data WatchlistAddData,
) (*models.WatchlistDoc, error) {

	if data.MovieID <= 0 || data.MovieTitle == "" {
		return nil, fmt.Errorf("%w: movie id and title are required", ErrValidation)
	}
	if data.Status == "" {
		data.Status = models.WatchlistStatusWant
	}
	if err := validateWatchlistStatus(data.Status); err != nil {
		return nil, err
	}

	w := &models.WatchlistDoc{
		UserID:     ownerID,
		MovieID:    data.MovieID,
		MovieTitle: data.MovieTitle,
		PosterPath: data.PosterPath,
		Status:     data.Status,
		AddedAt:    time.Now().UTC(),
	}

	if err := s.watchlist.Insert(ctx, w); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: movie already in watchlist", ErrDuplicate)
		}
		return nil, err
	}
	return w, nil
}

// UpdateStatus cambia el estado de una entrada, condicionado al dueño.
// Si el update no matchea distinguimos "no existe" de "no es tuya".
func (s *WatchlistService) UpdateStatus(
	ctx context.Context,
	id, ownerID primitive.ObjectID,
	status string,
) (*models.WatchlistDoc, error) {

	if err := validateWatchlistStatus(status); err != nil {
		return nil, err
	}

	matched, err := s.watchlist.UpdateStatus(ctx, id, ownerID, status)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, s.classifyMiss(ctx, id)
	}
	return s.watchlist.FindByID(ctx, id)
}

func (s *WatchlistService) Remove(ctx context.Context, id, ownerID primitive.ObjectID) error {
	deleted, err := s.watchlist.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return s.classifyMiss(ctx, id)
	}
	return nil
}

func (s *WatchlistService) classifyMiss(ctx context.Context, id primitive.ObjectID) error {
	exists, err := s.watchlist.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: watchlist item belongs to another user", ErrForbidden)
	}
	return fmt.Errorf("%w: watchlist item", ErrNotFound)
}
