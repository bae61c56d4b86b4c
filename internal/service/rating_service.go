package service

import (
	"context"
	"fmt"
	"math"

	"reelvault/internal/models"
	"reelvault/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingService struct {
	ratings *repository.RatingRepository
	users   *repository.UserRepository
}

func NewRatingService(r *repository.RatingRepository, u *repository.UserRepository) *RatingService {
	return &RatingService{ratings: r, users: u}
}

// AddOrUpdate es un upsert: una segunda calificación para el mismo
// (user, movie) pisa la anterior en vez de fallar.
func (s *RatingService) AddOrUpdate(
	ctx context.Context,
	ownerID primitive.ObjectID,
	movieID, rating int,
) (*models.RatingDoc, error) {

	if movieID <= 0 {
		return nil, fmt.Errorf("%w: movie id is required", ErrValidation)
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	doc, err := s.ratings.Upsert(ctx, ownerID, movieID, rating)
	if err != nil {
		return nil, err
	}
	out := []models.RatingDoc{*doc}
	s.populateUsernames(ctx, out)
	return &out[0], nil
}

func (s *RatingService) ListByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	limit, offset int,
) ([]models.RatingDoc, int64, error) {
	docs, total, err := s.ratings.FindByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	s.populateUsernames(ctx, docs)
	return docs, total, nil
}

// ListByMovie lista las calificaciones de una película junto con el
// agregado (promedio a 1 decimal + cantidad total).
func (s *RatingService) ListByMovie(
	ctx context.Context,
	movieID, limit, offset int,
) ([]models.RatingDoc, int64, *models.RatingStats, error) {

	docs, total, err := s.ratings.FindByMovie(ctx, movieID, limit, offset)
	if err != nil {
		return nil, 0, nil, err
	}

	stats, err := s.ratings.StatsByMovie(ctx, movieID)
	if err != nil {
		return nil, 0, nil, err
	}
	stats.Average = round1(stats.Average)

	s.populateUsernames(ctx, docs)
	return docs, total, stats, nil
}

func (s *RatingService) GetOne(
	ctx context.Context,
	userID primitive.ObjectID,
	movieID int,
) (*models.RatingDoc, error) {
	doc, err := s.ratings.GetOne(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: rating", ErrNotFound)
	}
	out := []models.RatingDoc{*doc}
	s.populateUsernames(ctx, out)
	return &out[0], nil
}

func (s *RatingService) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	deleted, err := s.ratings.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		exists, err := s.ratings.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: rating belongs to another user", ErrForbidden)
		}
		return fmt.Errorf("%w: rating", ErrNotFound)
	}
	return nil
}

// populateUsernames es el "populate" hecho a mano: un $in a users y
// se rellena en memoria. Best-effort, un fallo acá no rompe el listado.
func (s *RatingService) populateUsernames(ctx context.Context, docs []models.RatingDoc) {
	if len(docs) == 0 {
		return
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.UserID)
	}
	names, err := s.users.UsernamesByIDs(ctx, ids)
	if err != nil {
		return
	}
	for i := range docs {
		docs[i].Username = names[docs[i].UserID]
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
