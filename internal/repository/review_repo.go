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

type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{col: db.DB().Collection("reviews")}
}

func (r *ReviewRepository) Insert(ctx context.Context, rev *models.ReviewDoc) error {
	res, err := r.col.InsertOne(ctx, rev)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rev.ID = oid
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.ReviewDoc, error) {
	var rev models.ReviewDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &rev, err
}

func (r *ReviewRepository) GetOne(
	ctx context.Context,
	userID primitive.ObjectID,
	movieID int,
) (*models.ReviewDoc, error) {
	var rev models.ReviewDoc
	err := r.col.FindOne(ctx, bson.M{"userId": userID, "movieId": movieID}).Decode(&rev)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &rev, err
}

func (r *ReviewRepository) find(
	ctx context.Context,
	filter bson.M,
	limit, offset int,
) ([]models.ReviewDoc, int64, error) {

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

	var out []models.ReviewDoc
	for cur.Next(ctx) {
		var rev models.ReviewDoc
		if err := cur.Decode(&rev); err != nil {
			return nil, 0, err
		}
		out = append(out, rev)
	}
	return out, total, cur.Err()
}

// FindAll lista reviews con filtro opcional por rating exacto.
func (r *ReviewRepository) FindAll(
	ctx context.Context,
	rating, limit, offset int,
) ([]models.ReviewDoc, int64, error) {
	filter := bson.M{}
	if rating > 0 {
		filter["rating"] = rating
	}
	return r.find(ctx, filter, limit, offset)
}

func (r *ReviewRepository) FindByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	limit, offset int,
) ([]models.ReviewDoc, int64, error) {
	return r.find(ctx, bson.M{"userId": userID}, limit, offset)
}

func (r *ReviewRepository) FindByMovie(
	ctx context.Context,
	movieID, rating, limit, offset int,
) ([]models.ReviewDoc, int64, error) {
	filter := bson.M{"movieId": movieID}
	if rating > 0 {
		filter["rating"] = rating
	}
	return r.find(ctx, filter, limit, offset)
}

// Update modifica texto y rating condicionado a {_id, userId} en una sola
// operación; devuelve cuántos documentos matchearon.
func (r *ReviewRepository) Update(
	ctx context.Context,
	id, ownerID primitive.ObjectID,
	reviewText string,
	rating int,
) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "userId": ownerID},
		bson.M{"$set": bson.M{
			"reviewText": reviewText,
			"rating":     rating,
			"updatedAt":  time.Now().UTC(),
		}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *ReviewRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	return n > 0, err
}
