package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

func TestUserService(t *testing.T) {
	users := newFakeUserRepo(
		&domain.User{ID: "me", Email: "me@example.com", Role: domain.RoleManager},
		&domain.User{ID: "e1", Email: "e1@example.com", Role: domain.RoleEmployee},
	)
	surveys := newFakeSurveyRepo(&domain.Survey{ID: uuid.New(), CreatorID: "me"})
	responses := &fakeResponseRepo{responses: []*domain.Response{{ID: uuid.New()}}}
	rewards := &fakeRewardRepo{points: map[string]int64{"me": 30}}
	svc := NewUserService(users, surveys, responses, rewards)
	ctx := context.Background()

	me, err := svc.GetByID(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", me.Email)

	_, err = svc.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	employees, err := svc.ListEmployees(ctx, "me")
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "e1", employees[0].ID)

	dash, err := svc.Dashboard(ctx, "me")
	require.NoError(t, err)
	assert.Equal(t, &domain.Dashboard{SurveyCount: 1, ResponseCount: 1, RewardPoints: 30}, dash)
}

func TestIdentitySyncService_HandleEvent(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewIdentitySyncService(users)
	ctx := context.Background()

	err := svc.HandleEvent(ctx, ports.IdentityEvent{
		Type:      ports.IdentityUserCreated,
		UserID:    "user_2abc",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	user, _ := users.GetByID(ctx, "user_2abc")
	require.NotNil(t, user)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, domain.RoleEmployee, user.Role)

	require.NoError(t, svc.HandleEvent(ctx, ports.IdentityEvent{Type: "session.created", UserID: "user_2abc"}))

	require.NoError(t, svc.HandleEvent(ctx, ports.IdentityEvent{Type: ports.IdentityUserDeleted, UserID: "user_2abc"}))
	assert.Equal(t, []string{"user_2abc"}, users.deleted)

	assert.ErrorIs(t, svc.HandleEvent(ctx, ports.IdentityEvent{Type: ports.IdentityUserDeleted}), domain.ErrUserNotFound)
}
