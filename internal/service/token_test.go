package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testSecret = []byte("clave-de-prueba")

func TestIssueAndVerifyToken(t *testing.T) {
	userID := primitive.NewObjectID()

	token, err := IssueToken(testSecret, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := VerifyToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := IssueToken(testSecret, primitive.NewObjectID())
	require.NoError(t, err)

	_, err = VerifyToken([]byte("otra-clave"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": primitive.NewObjectID().Hex(),
		"exp": time.Now().Add(-time.Hour).Unix(),
		"iat": time.Now().Add(-25 * time.Hour).Unix(),
	})
	tokenStr, err := expired.SignedString(testSecret)
	require.NoError(t, err)

	_, err = VerifyToken(testSecret, tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenGarbage(t *testing.T) {
	_, err := VerifyToken(testSecret, "no.es.un.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenBadSubject(t *testing.T) {
	// firmado bien pero con un subject que no es ObjectID
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "no-es-un-object-id",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenStr, err := tok.SignedString(testSecret)
	require.NoError(t, err)

	_, err = VerifyToken(testSecret, tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
