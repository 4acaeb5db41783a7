package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vncsmyrnk/survey/internal/core/ports"
)

type rewardRepository struct {
	db *sql.DB
}

func NewRewardRepository(db *sql.DB) ports.RewardRepository {
	return &rewardRepository{db: db}
}

func (r *rewardRepository) SumPointsByUser(ctx context.Context, userID string) (int64, error) {
	var points int64
	err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(points), 0) FROM rewards WHERE user_id = $1`, userID).Scan(&points)
	if err != nil {
		return 0, fmt.Errorf("failed to sum reward points: %w", err)
	}
	return points, nil
}
