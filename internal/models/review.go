package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReviewDoc struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID primitive.ObjectID `json:"userId" bson:"userId"`
	// Snapshot del username al momento de escribir la review.
	Username   string    `json:"username" bson:"username"`
	MovieID    int       `json:"movieId" bson:"movieId"`
	MovieTitle string    `json:"movieTitle" bson:"movieTitle"`
	PosterPath string    `json:"posterPath" bson:"posterPath"`
	ReviewText string    `json:"reviewText" bson:"reviewText"`
	Rating     int       `json:"rating" bson:"rating"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt" bson:"updatedAt"`
}
