package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reelvault/internal/models"
	"reelvault/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewService struct {
	reviews *repository.ReviewRepository
}

type ReviewCreateData struct {
	MovieID    int
	MovieTitle string
	PosterPath string
	ReviewText string
	Rating     int
}

func NewReviewService(r *repository.ReviewRepository) *ReviewService {
	return &ReviewService{reviews: r}
}

func (s *ReviewService) ListAll(
	ctx context.Context,
	rating, limit, offset int,
) ([]models.ReviewDoc, int64, error) {
	return s.reviews.FindAll(ctx, rating, limit, offset)
}

func (s *ReviewService) ListByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	limit, offset int,
) ([]models.ReviewDoc, int64, error) {
	return s.reviews.FindByUser(ctx, userID, limit, offset)
}

func (s *ReviewService) ListByMovie(
	ctx context.Context,
	movieID, rating, limit, offset int,
) ([]models.ReviewDoc, int64, error) {
	return s.reviews.FindByMovie(ctx, movieID, rating, limit, offset)
}

// Create publica una review. A diferencia de los ratings acá no hay
// upsert: una segunda review del mismo (user, movie) se rechaza.
func (s *ReviewService) Create(
	ctx context.Context,
	ownerID primitive.ObjectID,
	username string,
	data ReviewCreateData,
) (*models.ReviewDoc, error) {

	if data.MovieID <= 0 || strings.TrimSpace(data.MovieTitle) == "" {
		return nil, fmt.Errorf("%w: movie id and title are required", ErrValidation)
	}
	if err := validateReviewText(data.ReviewText); err != nil {
		return nil, err
	}
	if err := validateRating(data.Rating); err != nil {
		return nil, err
	}

	if existing, err := s.reviews.GetOne(ctx, ownerID, data.MovieID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("%w: you have already reviewed this movie", ErrDuplicate)
	}

	now := time.Now().UTC()
	rev := &models.ReviewDoc{
		UserID:     ownerID,
		Username:   username,
		MovieID:    data.MovieID,
		MovieTitle: data.MovieTitle,
		PosterPath: data.PosterPath,
		ReviewText: data.ReviewText,
		Rating:     data.Rating,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.reviews.Insert(ctx, rev); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: you have already reviewed this movie", ErrDuplicate)
		}
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) Update(
	ctx context.Context,
	id, ownerID primitive.ObjectID,
	reviewText string,
	rating int,
) (*models.ReviewDoc, error) {

	if err := validateReviewText(reviewText); err != nil {
		return nil, err
	}
	if err := validateRating(rating); err != nil {
		return nil, err
	}

	matched, err := s.reviews.Update(ctx, id, ownerID, reviewText, rating)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, s.classifyMiss(ctx, id)
	}
	return s.reviews.FindByID(ctx, id)
}

func (s *ReviewService) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	deleted, err := s.reviews.Delete(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return s.classifyMiss(ctx, id)
	}
	return nil
}

func (s *ReviewService) classifyMiss(ctx context.Context, id primitive.ObjectID) error {
	exists, err := s.reviews.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: review belongs to another user", ErrForbidden)
	}
	return fmt.Errorf("%w: review", ErrNotFound)
}
