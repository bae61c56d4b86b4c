package db

import (
	"context"
	"log"
	"time"

	"reelvault/internal/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

func InitMongo(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("[mongo] error conectando: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("[mongo] ping falló: %v", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	log.Printf("[mongo] conectado a %s / DB=%s\n", cfg.MongoURI, cfg.MongoDB)
}

func DB() *mongo.Database {
	return mongoDB
}

// EnsureIndexes crea los índices únicos de los que dependen las
// restricciones de unicidad (username/email y (userId, movieId)).
// Mongo es el único punto de serialización: de dos creates concurrentes
// con la misma clave exactamente uno falla con duplicate key.
func EnsureIndexes(ctx context.Context) {
	unique := options.Index().SetUnique(true)

	userMovie := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "movieId", Value: 1}},
		Options: unique,
	}

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		},
		"watchlist": {userMovie},
		"ratings":   {userMovie},
		"reviews": {
			userMovie,
			{Keys: bson.D{{Key: "movieId", Value: 1}}},
		},
	}

	for col, models := range indexes {
		if _, err := mongoDB.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			log.Fatalf("[mongo] error creando índices de %s: %v", col, err)
		}
	}
	log.Println("[mongo] índices OK")
}
