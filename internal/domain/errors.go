package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrSessionExpired    = errors.New("sesión inválida o expirada")
	ErrInsufficientStock = errors.New("la cantidad supera el stock disponible")
	ErrUpstream          = errors.New("el backend de inventario respondió con error")
	ErrUnavailable       = errors.New("el backend de inventario no está disponible")
)

// ValidationError error de validación del lado del dashboard.
// Se evalúa antes de cualquier llamada de red; errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
