package ports

import (
	"context"

	"github.com/vncsmyrnk/survey/internal/core/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	ListEmployees(ctx context.Context, excludeID string) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Upsert(ctx context.Context, user *domain.User) error
	RestoreByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	ListEmployees(ctx context.Context, requesterID string) ([]*domain.User, error)
	Dashboard(ctx context.Context, userID string) (*domain.Dashboard, error)
}
