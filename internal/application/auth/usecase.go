package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-it/printstock/internal/application/dto"
	"github.com/campus-it/printstock/internal/domain"
	"github.com/campus-it/printstock/internal/domain/entity"
	"github.com/campus-it/printstock/internal/domain/repository"
	"github.com/campus-it/printstock/pkg/jwt"
)

// JWTConfig holds token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase covers both entry points: local admin login with bcrypt and
// the SSO callback from the identity gateway. The application never sees
// external credentials; the gateway hands over an opaque subject plus
// profile fields.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the use case.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifies username/password for local accounts and returns a session
// token. SSO-only accounts have no password hash and cannot log in here.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user)
}

// ResolveExternal upserts the user behind an identity-gateway subject and
// returns a session token. First sight of a subject provisions a staff
// account; later calls refresh the profile fields.
func (uc *AuthUseCase) ResolveExternal(ctx context.Context, in dto.SSORequest) (*dto.LoginResponse, error) {
	if in.Subject == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByExternalSubject(ctx, in.Subject)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if user == nil {
		username := in.Email
		if username == "" {
			username = in.Subject
		}
		user = &entity.User{
			ID:              uuid.New().String(),
			Username:        username,
			FullName:        in.FullName,
			Email:           in.Email,
			ExternalSubject: in.Subject,
			Role:            entity.RoleStaff,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
	} else if (in.FullName != "" && in.FullName != user.FullName) ||
		(in.Email != "" && in.Email != user.Email) {
		if in.FullName != "" {
			user.FullName = in.FullName
		}
		if in.Email != "" {
			user.Email = in.Email
		}
		user.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}
	return uc.issue(user)
}

// GetUser returns the profile behind a session token's user id.
func (uc *AuthUseCase) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
	}
}
