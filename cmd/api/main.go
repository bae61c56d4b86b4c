package main

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "reelvault/docs" // swagger docs

	"reelvault/internal/cache"
	"reelvault/internal/config"
	"reelvault/internal/db"
	"reelvault/internal/handler"
	"reelvault/internal/repository"
	"reelvault/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"
)

// limiter global para el proxy al catálogo: protege la cuota del API externo
var catalogLimiter = rate.NewLimiter(10, 20)

func rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !catalogLimiter.Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// @title ReelVault API
// @version 1.0
// @description API de watchlist de películas (catálogo TMDB, Mongo, Redis)
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db.EnsureIndexes(ctx)
	cancel()

	// repos
	userRepo := repository.NewUserRepository()
	watchlistRepo := repository.NewWatchlistRepository()
	ratingRepo := repository.NewRatingRepository()
	reviewRepo := repository.NewReviewRepository()

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	catalogSvc := service.NewCatalogService(cfg.TMDBAPIKey, cfg.TMDBBaseURL)
	watchlistSvc := service.NewWatchlistService(watchlistRepo)
	ratingSvc := service.NewRatingService(ratingRepo, userRepo)
	reviewSvc := service.NewReviewService(reviewRepo)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	movieH := handler.NewMovieHandler(catalogSvc)
	watchlistH := handler.NewWatchlistHandler(watchlistSvc)
	ratingH := handler.NewRatingHandler(ratingSvc)
	reviewH := handler.NewReviewHandler(reviewSvc, authSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authMw := handler.JWTAuth(cfg.JWTSecret)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/api/auth/register", authH.Register)
	r.Post("/api/auth/login", authH.Login)

	// Proxy al catálogo (público, con rate limit)
	r.Route("/api/movies", func(r chi.Router) {
		r.Use(rateLimit)
		r.Get("/search", movieH.Search)
		r.Get("/popular", movieH.Popular)
		r.Get("/trending", movieH.Trending)
		r.Get("/ws/search", movieH.SearchWS)
		r.Get("/{id}", movieH.Details)
		r.Get("/{id}/credits", movieH.Credits)
	})

	// Lecturas públicas de ratings y reviews
	r.Get("/api/ratings/user/{userId}", ratingH.ListByUser)
	r.Get("/api/ratings/movie/{movieId}", ratingH.ListByMovie)
	r.Get("/api/ratings/user/{userId}/movie/{movieId}", ratingH.GetUserMovieRating)

	r.Get("/api/reviews", reviewH.ListAll)
	r.Get("/api/reviews/user/{userId}", reviewH.ListByUser)
	r.Get("/api/reviews/movie/{movieId}", reviewH.ListByMovie)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	r.Group(func(r chi.Router) {
		r.Use(authMw)

		r.Get("/api/auth/verify", authH.Verify)

		r.Route("/api/watchlist", func(r chi.Router) {
			// mismo nombre de wildcard en todo el subárbol: en el GET
			// el {id} es el userId dueño de la lista
			r.Get("/{id}", watchlistH.List)
			r.Post("/", watchlistH.Add)
			r.Patch("/{id}", watchlistH.UpdateStatus)
			r.Delete("/{id}", watchlistH.Remove)
		})

		r.Post("/api/ratings", ratingH.AddOrUpdate)
		r.Delete("/api/ratings/{id}", ratingH.Delete)

		r.Post("/api/reviews", reviewH.Create)
		r.Put("/api/reviews/{id}", reviewH.Update)
		r.Delete("/api/reviews/{id}", reviewH.Delete)
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
