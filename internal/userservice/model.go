package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrNotFound          = errors.New("user not found")
)

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

// uniqueViolation reports whether err is a postgres unique constraint
// violation on the named constraint.
func uniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == name
	}

	return false
}

func (m *DBModel) insertUser(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (name, password)
		VALUES ($1, $2)
		RETURNING id`

	err := m.db.QueryRowContext(ctx, query, u.Name, u.Password.hash).Scan(&u.ID)
	if err != nil {
		switch {
		case uniqueViolation(err, "users_name_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	return nil
}

func (m *DBModel) getUserById(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, name, password
		FROM users
		WHERE id = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Password.hash)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *DBModel) getUserByName(ctx context.Context, name string) (*User, error) {
	query := `
		SELECT id, name, password
		FROM users
		WHERE name = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, name).Scan(&u.ID, &u.Name, &u.Password.hash)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// updateUser overwrites name and password hash in full; there is no
// partial patch.
func (m *DBModel) updateUser(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET name = $1, password = $2
		WHERE id = $3`

	res, err := m.db.ExecContext(ctx, query, u.Name, u.Password.hash, u.ID)
	if err != nil {
		switch {
		case uniqueViolation(err, "users_name_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// deleteUser removes the user row; the storage engine cascades the delete
// to the user's blogs and comments.
func (m *DBModel) deleteUser(ctx context.Context, id int) error {
	query := `
		DELETE FROM users
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
