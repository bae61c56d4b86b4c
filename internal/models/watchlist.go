package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Estados posibles de una entrada del watchlist
const (
	WatchlistStatusWant    = "want-to-watch"
	WatchlistStatusWatched = "watched"
)

type WatchlistDoc struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	MovieID    int                `json:"movieId" bson:"movieId"`
	MovieTitle string             `json:"movieTitle" bson:"movieTitle"`
	PosterPath string             `json:"posterPath" bson:"posterPath"`
	Status     string             `json:"status" bson:"status"` // want-to-watch|watched
	AddedAt    time.Time          `json:"addedAt" bson:"addedAt"`
}
