package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/pkg/jwt"
	"github.com/tu-usuario/comercial-pro/pkg/logger"
)

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (r *memUserRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) ListActive() ([]*entity.User, error) { return nil, nil }

func newTestUseCase() (*UseCase, *memUserRepo) {
	repo := newMemUserRepo()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	uc := NewUseCase(repo, Config{JWTSecret: "secreto-de-prueba", Issuer: "comercial-pro", ExpMinutes: 60}, log)
	return uc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newTestUseCase()

	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "cajero1",
		Email:    "cajero1@tienda.pe",
		Password: "supersegura",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, user.Role)
	assert.True(t, user.Active)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Username: "cajero1",
		Password: "supersegura",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, username, role, err := jwt.Parse("secreto-de-prueba", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, "cajero1", username)
	assert.Equal(t, entity.RoleVendedor, role)
}

func TestRegister_Validation(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "a@b.c", Password: "supersegura",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Username: "u1", Email: "a@b.c", Password: "corta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Username: "u1", Email: "a@b.c", Password: "supersegura", Role: "gerente",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_DuplicateUsernameOrEmail(t *testing.T) {
	uc, _ := newTestUseCase()

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "cajero1", Email: "cajero1@tienda.pe", Password: "supersegura",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Username: "cajero1", Email: "otro@tienda.pe", Password: "supersegura",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Username: "cajero2", Email: "cajero1@tienda.pe", Password: "supersegura",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_BadCredentialsAndInactive(t *testing.T) {
	uc, repo := newTestUseCase()

	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		Username: "cajero1", Email: "cajero1@tienda.pe", Password: "supersegura",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "fantasma", Password: "supersegura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	repo.users[user.ID].Active = false
	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "cajero1", Password: "supersegura"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
