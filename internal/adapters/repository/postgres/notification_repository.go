package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) ports.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Record(ctx context.Context, n *domain.EmailNotification) error {
	query := `
		INSERT INTO email_notifications (id, survey_id, user_id, email, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query, n.ID, n.SurveyID, n.UserID, n.Email, string(n.Status), n.Error, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}
	return nil
}
