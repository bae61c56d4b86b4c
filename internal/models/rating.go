package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RatingDoc struct {
	ID      primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID  primitive.ObjectID `json:"userId" bson:"userId"`
	MovieID int                `json:"movieId" bson:"movieId"`
	Rating  int                `json:"rating" bson:"rating"`
	// Username se resuelve con un lookup explícito sobre users, no se persiste.
	Username  string    `json:"username,omitempty" bson:"-"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// RatingStats es el agregado por película: promedio (1 decimal) y cantidad.
type RatingStats struct {
	Average float64 `json:"averageRating" bson:"average"`
	Count   int     `json:"ratingCount" bson:"count"`
}
