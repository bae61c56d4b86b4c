package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"reelvault/internal/models"
	"reelvault/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users     *repository.UserRepository
	jwtSecret []byte
}

type RegisterUserData struct {
	Username string
	Email    string
	Password string
	Bio      string
}

func NewAuthService(users *repository.UserRepository, secret string) *AuthService {
	return &AuthService{users: users, jwtSecret: []byte(secret)}
}

// ================== REGISTER & LOGIN ==================

// Register crea un usuario nuevo y devuelve un token recién emitido.
func (s *AuthService) Register(ctx context.Context, data RegisterUserData) (string, *models.UserDoc, error) {
	if err := validateRegistration(data.Username, data.Email, data.Password, data.Bio); err != nil {
		return "", nil, err
	}

	username := strings.TrimSpace(data.Username)
	email := strings.ToLower(strings.TrimSpace(data.Email))

	if existing, err := s.users.FindByUsername(ctx, username); err != nil {
		return "", nil, err
	} else if existing != nil {
		return "", nil, fmt.Errorf("%w: username already taken", ErrDuplicate)
	}
	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return "", nil, err
	} else if existing != nil {
		return "", nil, fmt.Errorf("%w: email already registered", ErrDuplicate)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	u := &models.UserDoc{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Bio:          data.Bio,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, u); err != nil {
		// el índice único gana la carrera entre el check de arriba y el insert
		if mongo.IsDuplicateKeyError(err) {
			return "", nil, fmt.Errorf("%w: username or email already registered", ErrDuplicate)
		}
		return "", nil, err
	}

	token, err := IssueToken(s.jwtSecret, u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDoc, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := IssueToken(s.jwtSecret, u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ================== VERIFY ==================

// Verify resuelve un token al perfil de su dueño.
func (s *AuthService) Verify(ctx context.Context, tokenStr string) (*models.UserDoc, error) {
	userID, err := VerifyToken(s.jwtSecret, tokenStr)
	if err != nil {
		return nil, err
	}
	return s.GetUserByID(ctx, userID)
}

func (s *AuthService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.UserDoc, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	return u, nil
}
