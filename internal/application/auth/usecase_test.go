package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
	"github.com/jhoicas/crm-api/pkg/jwt"
)

var jwtCfg = auth.JWTConfig{Secret: "auth-test-secret", ExpMinutes: 30, Issuer: "crm-api-test"}

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	repo := memory.NewUserRepository()
	_, err := usecase.NewUserUseCase(repo).Create(dto.CreateUserRequest{
		Username: "vendedor1", Email: "v@monteirocorretora.com", Password: "vendedor123", Name: "João Vendedor", Role: "sales",
	})
	require.NoError(t, err)
	return auth.NewAuthUseCase(repo, jwtCfg), repo
}

func TestLogin_TokenConSesion(t *testing.T) {
	uc, _ := newAuth(t)

	out, err := uc.Login(dto.LoginRequest{Username: "vendedor1", Password: "vendedor123"})
	require.NoError(t, err)
	assert.Equal(t, "vendedor1", out.User.Username)

	session, err := jwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, session.UserID)
	assert.Equal(t, "João Vendedor", session.Name)
	assert.Equal(t, "sales", session.Role)
}

func TestLogin_FallosIndistinguibles(t *testing.T) {
	uc, _ := newAuth(t)

	_, errPass := uc.Login(dto.LoginRequest{Username: "vendedor1", Password: "errada"})
	_, errUser := uc.Login(dto.LoginRequest{Username: "fantasma", Password: "vendedor123"})

	assert.ErrorIs(t, errPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errUser, domain.ErrUnauthorized)
	assert.Equal(t, errPass.Error(), errUser.Error())
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, repo := newAuth(t)
	u, err := repo.GetByUsername("vendedor1")
	require.NoError(t, err)
	u.Active = false
	_, err = repo.Update(u)
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Username: "vendedor1", Password: "vendedor123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVerifyCredentials(t *testing.T) {
	uc, _ := newAuth(t)

	u, ok := uc.VerifyCredentials("vendedor1", "vendedor123")
	require.True(t, ok)
	assert.Equal(t, "vendedor1", u.Username)

	_, ok = uc.VerifyCredentials("vendedor1", "")
	assert.False(t, ok)
}

func TestVerifyCredentials_UsuarioInexistenteTambienComparaHash(t *testing.T) {
	repo := memory.NewUserRepository()
	_, err := usecase.NewUserUseCase(repo).Create(dto.CreateUserRequest{
		Username: "admin", Email: "a@monteirocorretora.com", Password: "admin123", Name: "Administrador", Role: "admin",
	})
	require.NoError(t, err)
	stored, err := repo.GetByUsername("admin")
	require.NoError(t, err)

	var hashes []string
	uc := auth.NewAuthUseCase(repo, jwtCfg, auth.WithPasswordChecker(func(hash, password string) bool {
		hashes = append(hashes, hash)
		return usecase.CheckPassword(hash, password)
	}))

	_, ok := uc.VerifyCredentials("fantasma", "admin123")
	assert.False(t, ok)
	_, ok = uc.VerifyCredentials("admin", "errada")
	assert.False(t, ok)

	require.Len(t, hashes, 2, "ambos fallos deben pasar por una comparación bcrypt")
	assert.Equal(t, auth.DummyHash(), hashes[0])
	assert.Equal(t, stored.PasswordHash, hashes[1])
	assert.False(t, usecase.CheckPassword(auth.DummyHash(), "admin123"))
}
