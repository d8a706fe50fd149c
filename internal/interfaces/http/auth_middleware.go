package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/pkg/jwt"
)

// Locals keys de la sesión en Fiber.
const (
	LocalUserID        = "user_id"
	LocalEmail         = "email"
	LocalBackendToken  = "backend_token"
	LocalSessionExpiry = "session_expiry"
)

// AuthMiddleware valida el Bearer token de sesión y deja la sesión del backend en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalEmail, claims.Email)
		c.Locals(LocalBackendToken, claims.BackendToken)
		c.Locals(LocalSessionExpiry, claims.ExpiresAt)
		return c.Next()
	}
}

// GetSession arma la sesión explícita que reciben los casos de uso.
func GetSession(c *fiber.Ctx) ports.Session {
	return ports.Session{UserID: localString(c, LocalUserID), Token: localString(c, LocalBackendToken)}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetEmail devuelve el email del token de sesión.
func GetEmail(c *fiber.Ctx) string {
	return localString(c, LocalEmail)
}

// GetSessionExpiry vencimiento del token de sesión; cero si no hay sesión.
func GetSessionExpiry(c *fiber.Ctx) time.Time {
	t, _ := c.Locals(LocalSessionExpiry).(time.Time)
	return t
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// requireSession corta la petición si el middleware no cargó la sesión.
func requireSession(c *fiber.Ctx) (ports.Session, bool) {
	s := GetSession(c)
	if s.UserID == "" || s.Token == "" {
		_ = c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "sesión no encontrada en el token"})
		return s, false
	}
	return s, true
}
