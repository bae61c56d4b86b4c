package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI       string
	MongoDB        string
	RedisAddr      string
	RedisPass      string
	JWTSecret      string
	HTTPPort       string
	TMDBAPIKey     string
	TMDBBaseURL    string
	AllowedOrigins []string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "reelvault"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:      getEnv("REDIS_PASSWORD", ""),
		JWTSecret:      getEnv("JWT_SECRET", "super-secret"),
		HTTPPort:       getEnv("HTTP_PORT", "5000"),
		TMDBAPIKey:     getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:    getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Printf("[config] %s no está seteado, usando valor por defecto\n", key)
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
