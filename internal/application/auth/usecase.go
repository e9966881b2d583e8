package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/comercial-pro/internal/application/dto"
	"github.com/tu-usuario/comercial-pro/internal/domain"
	"github.com/tu-usuario/comercial-pro/internal/domain/entity"
	"github.com/tu-usuario/comercial-pro/internal/domain/repository"
	"github.com/tu-usuario/comercial-pro/pkg/jwt"
	"github.com/tu-usuario/comercial-pro/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// Config parámetros de emisión de tokens.
type Config struct {
	JWTSecret  string
	Issuer     string
	ExpMinutes int
}

// UseCase registro y login de usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	cfg      Config
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, cfg Config, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, cfg: cfg, log: log}
}

func validRole(role string) bool {
	return role == entity.RoleAdmin || role == entity.RoleVendedor || role == entity.RoleAlmacenero
}

// Register crea un usuario con la contraseña hasheada (bcrypt). Username y
// email son únicos; el rol por defecto es vendedor.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if strings.TrimSpace(in.Username) == "" {
		return nil, domain.NewInvalidInput("username", "es obligatorio")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, domain.NewInvalidInput("email", "es obligatorio")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewInvalidInput("password", "debe tener al menos 8 caracteres")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleVendedor
	}
	if !validRole(role) {
		return nil, domain.NewInvalidInput("role", "debe ser admin, vendedor o almacenero")
	}

	if existing, _ := uc.userRepo.FindByUsername(in.Username); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, _ := uc.userRepo.FindByEmail(in.Email); existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica credenciales y emite un JWT. Credenciales malas y usuarios
// inactivos responden lo mismo para no filtrar cuáles usuarios existen.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.NewInvalidInput("username", "usuario y contraseña son obligatorios")
	}

	user, err := uc.userRepo.FindByUsername(in.Username)
	if err != nil || user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.cfg.JWTSecret, user.ID, user.Username, user.Role, uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Msg("login exitoso")
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
