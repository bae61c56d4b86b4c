package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Las reglas que Mongoose aplicaba a nivel schema acá son funciones
// puras que corren antes de cualquier escritura.

var emailRx = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

func validateRegistration(username, email, password, bio string) error {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < 3 || n > 30 {
		return fmt.Errorf("%w: username must be between 3 and 30 characters", ErrValidation)
	}
	if !emailRx.MatchString(strings.ToLower(strings.TrimSpace(email))) {
		return fmt.Errorf("%w: please provide a valid email", ErrValidation)
	}
	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if utf8.RuneCountInString(bio) > 500 {
		return fmt.Errorf("%w: bio cannot exceed 500 characters", ErrValidation)
	}
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	return nil
}

func validateReviewText(text string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(text))
	if n < 10 {
		return fmt.Errorf("%w: review must be at least 10 characters", ErrValidation)
	}
	if n > 2000 {
		return fmt.Errorf("%w: review cannot exceed 2000 characters", ErrValidation)
	}
	return nil
}

func validateWatchlistStatus(status string) error {
	if status != "want-to-watch" && status != "watched" {
		return fmt.Errorf("%w: status must be want-to-watch or watched", ErrValidation)
	}
	return nil
}
