package service

import "errors"

// Taxonomía de errores del dominio. Los services devuelven estos
// sentinels (envueltos con fmt.Errorf("%w: ...")) y el handler es el
// único lugar que los traduce a status HTTP.
var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicate          = errors.New("duplicate")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
