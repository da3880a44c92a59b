package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/usersync/internal/models"
	"github.com/iudanet/usersync/internal/server/storage"
)

// querier общий интерфейс *sql.DB и *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ListUsers returns all users ordered by id
func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT id, name, age, created_at, updated_at
		FROM users
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// GetUser retrieves user by id
func (s *Storage) GetUser(ctx context.Context, id int64) (models.User, error) {
	return getUser(ctx, s.db, id)
}

func getUser(ctx context.Context, q querier, id int64) (models.User, error) {
	query := `
		SELECT id, name, age, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	var u models.User
	err := q.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Age, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

// CreateUser inserts a user. Повторный key возвращает результат первого вызова.
func (s *Storage) CreateUser(ctx context.Context, name string, age int, key string) (models.User, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if key != "" {
		u, found, err := lookupKey(ctx, tx, key)
		if err != nil {
			return models.User{}, false, err
		}
		if found {
			if u.Name != name || u.Age != age {
				return models.User{}, false, storage.ErrKeyConflict
			}
			// Пользователь мог быть изменен или удален после первого запроса
			current, err := getUser(ctx, tx, u.ID)
			switch {
			case err == nil:
				return current, false, nil
			case errors.Is(err, storage.ErrUserNotFound):
				return u, false, nil
			default:
				return models.User{}, false, err
			}
		}
	}

	now := s.now().UTC()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO users (name, age, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		name, age, now, now,
	)
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.User{}, false, fmt.Errorf("failed to get user id: %w", err)
	}

	if key != "" {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO idempotency_keys (key, user_id, name, age, created_at) VALUES (?, ?, ?, ?, ?)`,
			key, id, name, age, now,
		)
		if err != nil {
			return models.User{}, false, fmt.Errorf("failed to save idempotency key: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return models.User{ID: id, Name: name, Age: age, CreatedAt: now, UpdatedAt: now}, true, nil
}

func lookupKey(ctx context.Context, q querier, key string) (models.User, bool, error) {
	query := `
		SELECT user_id, name, age, created_at
		FROM idempotency_keys
		WHERE key = ?
	`

	var u models.User
	err := q.QueryRowContext(ctx, query, key).Scan(&u.ID, &u.Name, &u.Age, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, false, nil
		}
		return models.User{}, false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	u.UpdatedAt = u.CreatedAt

	return u, true, nil
}

// UpdateUser replaces name and age of an existing user
func (s *Storage) UpdateUser(ctx context.Context, id int64, name string, age int) (models.User, error) {
	query := `
		UPDATE users
		SET name = ?, age = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query, name, age, s.now().UTC(), id)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return models.User{}, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return models.User{}, storage.ErrUserNotFound
	}

	return s.GetUser(ctx, id)
}

// DeleteUser deletes user by id
func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrUserNotFound
	}

	return nil
}
