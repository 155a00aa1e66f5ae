package repository

import (
	"context"

	"github.com/campus-it/printstock/internal/domain/entity"
)

// UserRepository is the persistence port for users.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByExternalSubject(ctx context.Context, subject string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
