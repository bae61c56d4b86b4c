package repository

import (
	"context"

	"reelvault/internal/db"
	"reelvault/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WatchlistRepository struct {
	col *mongo.Collection
}

func NewWatchlistRepository() *WatchlistRepository {
	return &WatchlistRepository{col: db.DB().Collection("watchlist")}
}

func (r *WatchlistRepository) FindByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	status string,
) ([]models.WatchlistDoc, error) {

	filter := bson.M{"userId": userID}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.WatchlistDoc
	for cur.Next(ctx) {
		var w models.WatchlistDoc
		if err := cur.Decode(&w); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, cur.Err()
}

// Insert confía en el índice único (userId, movieId): un duplicado
// termina en duplicate key error, que el service traduce.
func (r *WatchlistRepository) Insert(ctx context.Context, w *models.WatchlistDoc) error {
	res, err := r.col.InsertOne(ctx, w)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		w.ID = oid
	}
	return nil
}

// UpdateStatus aplica el cambio condicionado a {_id, userId} en una sola
// operación; devuelve cuántos documentos matchearon.
func (r *WatchlistRepository) UpdateStatus(
	ctx context.Context,
	id, ownerID primitive.ObjectID,
	status string,
) (int64, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "userId": ownerID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (r *WatchlistRepository) Delete(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "userId": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *WatchlistRepository) ExistsByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	return n > 0, err
}

func (r *WatchlistRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WatchlistDoc, error) {
	var w models.WatchlistDoc
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&w)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &w, err
}
