package repository

import (
	"context"
	"time"

	"reelvault/internal/db"
	"reelvault/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{col: db.DB().Collection("ratings")}
}

// Upsert crea o pisa el rating de (userId, movieId) en una sola operación.
func (r *RatingRepository) Upsert(
	ctx context.Context,
	userID primitive.ObjectID,
	movieID, rating int,
) (*models.RatingDoc, error) {

	filter := bson.M{"userId": userID, "movieId": movieID}
	update := bson.M{"$set": bson.M{
		"userId":    userID,
		"movieId":   movieID,
		"rating":    rating,
		"createdAt": time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc models.RatingDoc
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *RatingRepository) GetOne(
	ctx context.Context,
	userID primitive.ObjectID,
	movieID int,
) (*models.RatingDoc, error) {
	var doc models.RatingDoc
	err := r.col.FindOne(ctx, bson.M{"userId": userID, "movieId": movieID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &doc, err
}

func (r *RatingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RatingDoc, error) {
	var doc models.RatingDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &doc, err
}

func (r *RatingRepository) find(
	ctx context.Context,
	filter bson.M,
	limit, offset int,
) ([]models.RatingDoc, int64, error) {

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []models.RatingDoc
	for cur.Next(ctx) {
		var doc models.RatingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc)
	}
	return out, total, cur.Err()
}

func (r *RatingRepository) FindByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	limit, offset int,
) ([]models.RatingDoc, int64, error) {
	return r.find(ctx, bson.M{"userId": userID}, limit, offset)
}

func (r *RatingRepository) FindByMovie(
	ctx context.Context,
	movieID, limit, offset int,
) ([]models.RatingDoc, int64, error) {
	return r.find(ctx, bson.M{"movieId": movieID}, limit, offset)
}

// StatsByMovie calcula promedio y cantidad con un pipeline de agregación.
func (r *RatingRepository) StatsByMovie(ctx context.Context, movieID int) (*models.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"movieId": movieID}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var stats models.RatingStats
		if err := cur.Decode(&stats); err != nil {
			return nil, err
		}
		return &stats, cur.Err()
	}
	// sin ratings todavía
	return &models.RatingStats{}, cur.Err()
}

func (r *RatingRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *RatingRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	return n > 0, err
}
