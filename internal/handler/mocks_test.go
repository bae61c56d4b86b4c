package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"reelvault/internal/models"
	"reelvault/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// withUserID simula lo que hace el middleware JWT: mete el userId en el
// contexto del request.
func withUserID(r *http.Request, id primitive.ObjectID) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), CtxUserID, id))
}

// withURLParam inyecta un parámetro de ruta como lo haría el router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func chiRouteCtx(r *http.Request) *chi.Context {
	return chi.RouteContext(r.Context())
}

func decodeBody(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return out
}

// ==================== mocks de los services ====================

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, data service.RegisterUserData) (string, *models.UserDoc, error) {
	args := m.Called(ctx, data)
	u, _ := args.Get(1).(*models.UserDoc)
	return args.String(0), u, args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *models.UserDoc, error) {
	args := m.Called(ctx, email, password)
	u, _ := args.Get(1).(*models.UserDoc)
	return args.String(0), u, args.Error(2)
}

func (m *mockAuthService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*models.UserDoc)
	return u, args.Error(1)
}

type mockWatchlistService struct{ mock.Mock }

func (m *mockWatchlistService) ListByUser(ctx context.Context, userID primitive.ObjectID, status string) ([]models.WatchlistDoc, error) {
	args := m.Called(ctx, userID, status)
	docs, _ := args.Get(0).([]models.WatchlistDoc)
	return docs, args.Error(1)
}

func (m *mockWatchlistService) Add(ctx context.Context, ownerID primitive.ObjectID, data service.WatchlistAddData) (*models.WatchlistDoc, error) {
	args := m.Called(ctx, ownerID, data)
	doc, _ := args.Get(0).(*models.WatchlistDoc)
	return doc, args.Error(1)
}

func (m *mockWatchlistService) UpdateStatus(ctx context.Context, id, ownerID primitive.ObjectID, status string) (*models.WatchlistDoc, error) {
	args := m.Called(ctx, id, ownerID, status)
	doc, _ := args.Get(0).(*models.WatchlistDoc)
	return doc, args.Error(1)
}

func (m *mockWatchlistService) Remove(ctx context.Context, id, ownerID primitive.ObjectID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

type mockRatingService struct{ mock.Mock }

func (m *mockRatingService) AddOrUpdate(ctx context.Context, ownerID primitive.ObjectID, movieID, rating int) (*models.RatingDoc, error) {
	args := m.Called(ctx, ownerID, movieID, rating)
	doc, _ := args.Get(0).(*models.RatingDoc)
	return doc, args.Error(1)
}

func (m *mockRatingService) ListByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]models.RatingDoc, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	docs, _ := args.Get(0).([]models.RatingDoc)
	return docs, int64(args.Int(1)), args.Error(2)
}

func (m *mockRatingService) ListByMovie(ctx context.Context, movieID, limit, offset int) ([]models.RatingDoc, int64, *models.RatingStats, error) {
	args := m.Called(ctx, movieID, limit, offset)
	docs, _ := args.Get(0).([]models.RatingDoc)
	stats, _ := args.Get(2).(*models.RatingStats)
	return docs, int64(args.Int(1)), stats, args.Error(3)
}

func (m *mockRatingService) GetOne(ctx context.Context, userID primitive.ObjectID, movieID int) (*models.RatingDoc, error) {
	args := m.Called(ctx, userID, movieID)
	doc, _ := args.Get(0).(*models.RatingDoc)
	return doc, args.Error(1)
}

func (m *mockRatingService) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

type mockReviewService struct{ mock.Mock }

func (m *mockReviewService) ListAll(ctx context.Context, rating, limit, offset int) ([]models.ReviewDoc, int64, error) {
	args := m.Called(ctx, rating, limit, offset)
	docs, _ := args.Get(0).([]models.ReviewDoc)
	return docs, int64(args.Int(1)), args.Error(2)
}

func (m *mockReviewService) ListByUser(ctx context.Context, userID primitive.ObjectID, limit, offset int) ([]models.ReviewDoc, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	docs, _ := args.Get(0).([]models.ReviewDoc)
	return docs, int64(args.Int(1)), args.Error(2)
}

func (m *mockReviewService) ListByMovie(ctx context.Context, movieID, rating, limit, offset int) ([]models.ReviewDoc, int64, error) {
	args := m.Called(ctx, movieID, rating, limit, offset)
	docs, _ := args.Get(0).([]models.ReviewDoc)
	return docs, int64(args.Int(1)), args.Error(2)
}

func (m *mockReviewService) Create(ctx context.Context, ownerID primitive.ObjectID, username string, data service.ReviewCreateData) (*models.ReviewDoc, error) {
	args := m.Called(ctx, ownerID, username, data)
	doc, _ := args.Get(0).(*models.ReviewDoc)
	return doc, args.Error(1)
}

func (m *mockReviewService) Update(ctx context.Context, id, ownerID primitive.ObjectID, reviewText string, rating int) (*models.ReviewDoc, error) {
	args := m.Called(ctx, id, ownerID, reviewText, rating)
	doc, _ := args.Get(0).(*models.ReviewDoc)
	return doc, args.Error(1)
}

func (m *mockReviewService) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

type mockCatalogService struct{ mock.Mock }

func (m *mockCatalogService) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	args := m.Called(ctx, query, page)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockCatalogService) Details(ctx context.Context, movieID int) (json.RawMessage, error) {
	args := m.Called(ctx, movieID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockCatalogService) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	args := m.Called(ctx, page)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockCatalogService) Trending(ctx context.Context, timeWindow string) (json.RawMessage, error) {
	args := m.Called(ctx, timeWindow)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockCatalogService) Credits(ctx context.Context, movieID int) (json.RawMessage, error) {
	args := m.Called(ctx, movieID)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockCatalogService) Suggest(ctx context.Context, query string, limit int) ([]json.RawMessage, error) {
	args := m.Called(ctx, query, limit)
	raw, _ := args.Get(0).([]json.RawMessage)
	return raw, args.Error(1)
}
