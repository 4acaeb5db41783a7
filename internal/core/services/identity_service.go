package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type identitySyncService struct {
	userRepo ports.UserRepository
}

// NewIdentitySyncService mirrors users managed by the external identity
// provider into the local users table.
func NewIdentitySyncService(userRepo ports.UserRepository) ports.IdentitySyncService {
	return &identitySyncService{userRepo: userRepo}
}

func (s *identitySyncService) HandleEvent(ctx context.Context, event ports.IdentityEvent) error {
	if event.UserID == "" {
		return domain.ErrUserNotFound
	}

	switch event.Type {
	case ports.IdentityUserCreated, ports.IdentityUserUpdated:
		user := &domain.User{
			ID:        event.UserID,
			Email:     event.Email,
			Name:      strings.TrimSpace(event.FirstName + " " + event.LastName),
			Role:      domain.RoleEmployee,
			CreatedAt: time.Now(),
		}
		if err := s.userRepo.Upsert(ctx, user); err != nil {
			return fmt.Errorf("failed to upsert user: %w", err)
		}
	case ports.IdentityUserDeleted:
		if err := s.userRepo.Delete(ctx, event.UserID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
	}

	return nil
}
