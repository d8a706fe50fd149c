// Package auth implementa el ciclo de vida de la sesión del dashboard:
// login, signup, verificación y logout contra el backend de Restocker.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/restocker/internal/application/dto"
	"github.com/jhoicas/restocker/internal/application/ports"
	"github.com/jhoicas/restocker/internal/domain"
	"github.com/jhoicas/restocker/internal/domain/entity"
	"github.com/jhoicas/restocker/pkg/jwt"
	"github.com/jhoicas/restocker/pkg/logger"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	backend ports.AuthBackend
	jwtCfg  JWTConfig
	log     *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(backend ports.AuthBackend, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{backend: backend, jwtCfg: jwtCfg, log: log.Named("auth")}
}

// Login autentica contra el backend, obtiene el usuario y emite el token de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Invalid("email", "email y password son requeridos")
	}
	token, err := uc.backend.Login(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}
	return uc.openSession(ctx, token)
}

// Signup registra al usuario en el backend y abre la sesión como en Login.
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.LoginResponse, error) {
	cred := ports.Credentials{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
	}
	if cred.Name == "" {
		return nil, domain.Invalid("name", "el nombre es requerido")
	}
	if cred.Email == "" || cred.Password == "" {
		return nil, domain.Invalid("email", "email y password son requeridos")
	}
	token, err := uc.backend.Signup(ctx, cred)
	if err != nil {
		return nil, err
	}
	return uc.openSession(ctx, token)
}

func (uc *AuthUseCase) openSession(ctx context.Context, backendToken string) (*dto.LoginResponse, error) {
	user, err := uc.backend.Me(ctx, backendToken)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, backendToken, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("sesión iniciada")
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      toUserResponse(user),
	}, nil
}

// Verify confirma con el backend que la sesión sigue viva.
// Cualquier rechazo del backend invalida la sesión (ErrSessionExpired);
// una caída de red se propaga tal cual.
func (uc *AuthUseCase) Verify(ctx context.Context, s ports.Session, expiresAt time.Time) (*dto.SessionResponse, error) {
	user, err := uc.backend.Verify(ctx, s.Token)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			return nil, err
		}
		uc.log.Debug().Err(err).Str("user_id", s.UserID).Msg("sesión rechazada por el backend")
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}
	if user.ID != s.UserID {
		return nil, domain.ErrSessionExpired
	}
	return &dto.SessionResponse{User: toUserResponse(user), ExpiresAt: expiresAt}, nil
}

// Logout avisa al backend; la sesión local se descarta siempre, aunque el backend falle.
func (uc *AuthUseCase) Logout(ctx context.Context, s ports.Session) {
	if err := uc.backend.Logout(ctx, s.Token); err != nil {
		uc.log.Warn().Err(err).Str("user_id", s.UserID).Msg("logout en backend falló; sesión local descartada")
		return
	}
	uc.log.Info().Str("user_id", s.UserID).Msg("sesión cerrada")
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}
