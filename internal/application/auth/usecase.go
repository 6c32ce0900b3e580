package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zone-laptop/zone-store/internal/application/dto"
	"github.com/zone-laptop/zone-store/internal/domain"
	"github.com/zone-laptop/zone-store/internal/domain/customer"
	"github.com/zone-laptop/zone-store/internal/domain/entity"
	"github.com/zone-laptop/zone-store/internal/domain/repository"
	"github.com/zone-laptop/zone-store/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro, login y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea una cuenta de cliente. Devuelve ErrEmailAlreadyExists si el email ya está en uso.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if verr := dto.Validate(in); verr != nil {
		return nil, verr
	}
	idNumber := customer.NormalizeIDNumber(in.IDNumber)
	if idNumber == "" {
		verr := domain.NewValidationError()
		verr.Add("id_number", "es obligatorio")
		return nil, verr
	}
	return uc.create(ctx, &entity.User{
		Email:    in.Email,
		FullName: customer.NormalizeName(in.FullName),
		IDNumber: idNumber,
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		Role:     entity.RoleCliente,
	}, in.Password)
}

// CreateStaff da de alta un cajero o administrador.
func (uc *AuthUseCase) CreateStaff(ctx context.Context, in dto.CreateStaffRequest) (*dto.UserResponse, error) {
	if verr := dto.Validate(in); verr != nil {
		return nil, verr
	}
	return uc.create(ctx, &entity.User{
		Email:    in.Email,
		FullName: customer.NormalizeName(in.FullName),
		Role:     in.Role,
	}, in.Password)
}

func (uc *AuthUseCase) create(ctx context.Context, user *entity.User, password string) (*dto.UserResponse, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user.ID = uuid.New().String()
	user.PasswordHash = string(hash)
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y password incorrecto responden igual.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if verr := dto.Validate(in); verr != nil {
		return nil, verr
	}
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me datos del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IDNumber:  u.IDNumber,
		Phone:     u.Phone,
		Address:   u.Address,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
