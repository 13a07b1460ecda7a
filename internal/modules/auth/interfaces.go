package auth

import (
	"context"

	"mediahub/internal/domain"
)

// UserStore — only the methods the auth service uses.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type tokenService interface {
	GenerateToken(userID string) (string, error)
}
