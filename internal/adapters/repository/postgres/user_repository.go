package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/vncsmyrnk/survey/internal/core/domain"
	"github.com/vncsmyrnk/survey/internal/core/ports"
)

const userColumns = `id, email, name, role, created_at, deleted_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND deleted_at IS NULL`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ANY($1) AND deleted_at IS NULL`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *UserRepository) ListEmployees(ctx context.Context, excludeID string) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1 AND id <> $2 AND deleted_at IS NULL
		ORDER BY name, email
	`
	rows, err := r.db.QueryContext(ctx, query, string(domain.RoleEmployee), excludeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.Role == "" {
		user.Role = domain.RoleEmployee
	}
	query := `INSERT INTO users (id, email, name, role) VALUES ($1, $2, $3, $4) RETURNING created_at`
	return r.db.QueryRowContext(ctx, query, user.ID, user.Email, user.Name, string(user.Role)).Scan(&user.CreatedAt)
}

// userReferences lists every column holding a users.id.
var userReferences = []struct{ table, column string }{
	{"refresh_tokens", "user_id"},
	{"surveys", "creator_id"},
	{"responses", "user_id"},
	{"rewards", "user_id"},
	{"email_notifications", "user_id"},
}

// Upsert creates the user or refreshes its email and name. An existing role is
// kept, and a previously deleted user is restored.
//
// When another active user already owns the email, that user is merged into
// this one: its role carries over, every row referencing it is moved to
// user.ID, and the old row is removed.
func (r *UserRepository) Upsert(ctx context.Context, user *domain.User) error {
	if user.Role == "" {
		user.Role = domain.RoleEmployee
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var previousID string
	var previousRole domain.Role
	err = tx.QueryRowContext(ctx,
		`SELECT id, role FROM users WHERE email = $1 AND id <> $2 AND deleted_at IS NULL FOR UPDATE`,
		user.Email, user.ID,
	).Scan(&previousID, &previousRole)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("failed to look up email owner: %w", err)
	default:
		// Frees the email for the insert below.
		if _, err := tx.ExecContext(ctx, `UPDATE users SET deleted_at = NOW() WHERE id = $1`, previousID); err != nil {
			return fmt.Errorf("failed to release email: %w", err)
		}
		user.Role = previousRole
	}

	query := `
		INSERT INTO users (id, email, name, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    deleted_at = NULL
		RETURNING role, created_at
	`
	err = tx.QueryRowContext(ctx, query, user.ID, user.Email, user.Name, string(user.Role)).Scan(&user.Role, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	if previousID != "" {
		for _, ref := range userReferences {
			stmt := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`, ref.table, ref.column, ref.column)
			if _, err := tx.ExecContext(ctx, stmt, user.ID, previousID); err != nil {
				return fmt.Errorf("failed to move %s to merged user: %w", ref.table, err)
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, previousID); err != nil {
			return fmt.Errorf("failed to remove merged user: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RestoreByEmail clears the deletion of the most recently deleted user with
// the email. It returns nil, nil when there is no such user.
func (r *UserRepository) RestoreByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		UPDATE users SET deleted_at = NULL
		WHERE id = (
			SELECT id FROM users
			WHERE email = $1 AND deleted_at IS NOT NULL
			ORDER BY deleted_at DESC
			LIMIT 1
		)
		RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to restore user: %w", err)
	}
	return user, nil
}

// Delete soft-deletes the user so that their surveys and responses stay intact.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.CreatedAt, &user.DeletedAt); err != nil {
		return nil, err
	}
	return user, nil
}

func scanUsers(rows *sql.Rows) ([]*domain.User, error) {
	users := []*domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
