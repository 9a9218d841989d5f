package auth

import (
	"sync"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login por username/password.
type AuthUseCase struct {
	userRepo      repository.UserRepository
	jwtCfg        JWTConfig
	checkPassword func(hash, password string) bool
}

// Option modifica la construcción del caso de uso.
type Option func(*AuthUseCase)

// WithPasswordChecker reemplaza la verificación bcrypt.
func WithPasswordChecker(check func(hash, password string) bool) Option {
	return func(uc *AuthUseCase) { uc.checkPassword = check }
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, opts ...Option) *AuthUseCase {
	uc := &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, checkPassword: usecase.CheckPassword}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// DummyHash hash bcrypt contra el que se compara cuando el username no existe,
// así ambos fallos cuestan una verificación bcrypt.
var DummyHash = sync.OnceValue(func() string {
	hash, _ := usecase.HashPassword("crm-api-usuario-inexistente")
	return hash
})

// VerifyCredentials devuelve el usuario si username y password coinciden.
// "Usuario inexistente" y "password incorrecto" producen el mismo false,
// para no revelar qué usernames existen.
func (uc *AuthUseCase) VerifyCredentials(username, password string) (*entity.User, bool) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil || user == nil {
		uc.checkPassword(DummyHash(), password)
		return nil, false
	}
	if !uc.checkPassword(user.PasswordHash, password) {
		return nil, false
	}
	return user, true
}

// Login verifica credenciales, genera el JWT y retorna token + usuario.
// Credenciales inválidas → ErrUnauthorized; cuenta inactiva → ErrForbidden.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, ok := uc.VerifyCredentials(in.Username, in.Password)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}
