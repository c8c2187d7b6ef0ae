package common

import (
	"context"
	"database/sql"
)

// InitSchema creates the users, blogs and comments tables if they do not
// exist yet. It runs on every startup and must stay safe to repeat: every
// statement is CREATE TABLE IF NOT EXISTS and never drops or alters data.
func InitSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS blogs (
			id SERIAL PRIMARY KEY,
			user_id BIGINT REFERENCES users (id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			content TEXT,
			likes BIGINT DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id SERIAL PRIMARY KEY,
			content TEXT,
			blog_id BIGINT REFERENCES blogs (id) ON DELETE CASCADE,
			user_id BIGINT REFERENCES users (id) ON DELETE CASCADE
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
