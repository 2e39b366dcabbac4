package service

import (
	"context"
	"testing"

	"github.com/mateoadann/ferrerp/internal/config"
	"github.com/mateoadann/ferrerp/internal/dto"
	"github.com/mateoadann/ferrerp/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func nuevoAuth() (*stubUsuarioRepo, AuthService) {
	repo := newStubUsuarioRepo()
	cfg := &config.Config{JWTSecret: "secreto-de-prueba", JWTExpirationHours: 8, JWTRefreshHours: 168}
	return repo, NewAuthService(repo, cfg)
}

func seedUsuario(r *stubUsuarioRepo, username, password string, rol model.RolUsuario) *model.Usuario {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &model.Usuario{
		ID:           uuid.New(),
		Username:     username,
		Nombre:       "Usuario de prueba",
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
	}
	r.usuarios[u.ID] = u
	return u
}

func TestLogin(t *testing.T) {
	repo, svc := nuevoAuth()
	seedUsuario(repo, "vendedor1", "clave1234", model.RolVendedor)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "vendedor1",
		Password: "clave1234",
	})
	require.NoError(t, err)

	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 8*3600, resp.ExpiresIn)
	assert.Equal(t, "vendedor", resp.User.Rol)

	// El token lleva los claims que el middleware necesita para autorizar.
	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("secreto-de-prueba"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "vendedor1", claims["username"])
	assert.Equal(t, "vendedor", claims["rol"])
}

func TestRefreshEmiteNuevoPar(t *testing.T) {
	repo, svc := nuevoAuth()
	seedUsuario(repo, "vendedor1", "clave1234", model.RolVendedor)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "vendedor1",
		Password: "clave1234",
	})
	require.NoError(t, err)
	require.NotEmpty(t, login.RefreshToken)

	resp, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "vendedor1", resp.User.Username)
}

func TestRefreshTokenInvalido(t *testing.T) {
	_, svc := nuevoAuth()

	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.True(t, EsKind(err, KindCredencialInvalida))
}

func TestRefreshUsuarioDesactivado(t *testing.T) {
	repo, svc := nuevoAuth()
	u := seedUsuario(repo, "vendedor1", "clave1234", model.RolVendedor)

	login, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "vendedor1",
		Password: "clave1234",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DesactivarUsuario(context.Background(), u.ID))

	_, err = svc.Refresh(context.Background(), login.RefreshToken)
	assert.True(t, EsKind(err, KindCredencialInvalida))
}

func TestLoginPasswordIncorrecta(t *testing.T) {
	repo, svc := nuevoAuth()
	seedUsuario(repo, "vendedor1", "clave1234", model.RolVendedor)

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "vendedor1",
		Password: "otra-clave",
	})
	assert.True(t, EsKind(err, KindCredencialInvalida), "err = %v", err)
}

func TestLoginUsuarioInexistente(t *testing.T) {
	_, svc := nuevoAuth()

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "fantasma",
		Password: "clave1234",
	})
	assert.True(t, EsKind(err, KindCredencialInvalida), "err = %v", err)
}

func TestLoginUsuarioDesactivado(t *testing.T) {
	repo, svc := nuevoAuth()
	u := seedUsuario(repo, "exempleado", "clave1234", model.RolVendedor)
	u.Activo = false

	_, err := svc.Login(context.Background(), dto.LoginRequest{
		Username: "exempleado",
		Password: "clave1234",
	})
	assert.True(t, EsKind(err, KindCredencialInvalida), "err = %v", err)
}

func TestCrearUsuarioDuplicado(t *testing.T) {
	repo, svc := nuevoAuth()
	seedUsuario(repo, "admin", "clave1234", model.RolAdministrador)

	_, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "admin",
		Nombre:   "Otro admin",
		Password: "clave5678",
		Rol:      "administrador",
	})
	assert.True(t, EsKind(err, KindDuplicado), "err = %v", err)
}

func TestCrearYDesactivarUsuario(t *testing.T) {
	_, svc := nuevoAuth()

	resp, err := svc.CrearUsuario(context.Background(), dto.CrearUsuarioRequest{
		Username: "cajero2",
		Nombre:   "Cajero turno tarde",
		Password: "clave1234",
		Rol:      "vendedor",
	})
	require.NoError(t, err)
	assert.True(t, resp.Activo)

	id := uuid.MustParse(resp.ID)
	require.NoError(t, svc.DesactivarUsuario(context.Background(), id))

	// Desactivado no vuelve a loguear.
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "cajero2", Password: "clave1234"})
	assert.True(t, EsKind(err, KindCredencialInvalida), "err = %v", err)
}
