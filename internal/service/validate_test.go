package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRegistration(t *testing.T) {
	cases := []struct {
		name     string
		username string
		email    string
		password string
		bio      string
		wantErr  bool
	}{
		{"valido", "cinefilo99", "cine@example.com", "secreto1", "me gustan las de terror", false},
		{"username corto", "ab", "cine@example.com", "secreto1", "", true},
		{"username largo", strings.Repeat("a", 31), "cine@example.com", "secreto1", "", true},
		{"username con espacios alrededor", "  cinefilo  ", "cine@example.com", "secreto1", "", false},
		{"email invalido", "cinefilo", "no-es-un-email", "secreto1", "", true},
		{"email sin tld", "cinefilo", "cine@example", "secreto1", "", true},
		{"password corta", "cinefilo", "cine@example.com", "12345", "", true},
		{"bio al limite", "cinefilo", "cine@example.com", "secreto1", strings.Repeat("x", 500), false},
		{"bio excedida", "cinefilo", "cine@example.com", "secreto1", strings.Repeat("x", 501), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateRegistration(tc.username, tc.email, tc.password, tc.bio)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRating(t *testing.T) {
	assert.ErrorIs(t, validateRating(0), ErrValidation)
	assert.ErrorIs(t, validateRating(6), ErrValidation)
	assert.NoError(t, validateRating(1))
	assert.NoError(t, validateRating(5))
}

func TestValidateReviewText(t *testing.T) {
	assert.ErrorIs(t, validateReviewText("corta"), ErrValidation)
	// los espacios no cuentan para el mínimo
	assert.ErrorIs(t, validateReviewText("   corta   "), ErrValidation)
	assert.ErrorIs(t, validateReviewText(strings.Repeat("x", 2001)), ErrValidation)
	assert.NoError(t, validateReviewText("una review con sustancia"))
	assert.NoError(t, validateReviewText(strings.Repeat("x", 2000)))
}

func TestValidateWatchlistStatus(t *testing.T) {
	assert.NoError(t, validateWatchlistStatus("want-to-watch"))
	assert.NoError(t, validateWatchlistStatus("watched"))
	assert.ErrorIs(t, validateWatchlistStatus("viendo"), ErrValidation)
	assert.ErrorIs(t, validateWatchlistStatus(""), ErrValidation)
}
