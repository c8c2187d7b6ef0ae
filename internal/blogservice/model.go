package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// foreignKeyError reports whether err is a postgres foreign key constraint
// violation on the named constraint.
func foreignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" && pqErr.Constraint == name
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, title, content string, userID int) (int, error) {
	query := `
		INSERT INTO blogs (title, content, user_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, title, content, userID).Scan(&id)
	if err != nil {
		switch {
		case foreignKeyError(err, "blogs_user_id_fkey"):
			return 0, ErrUserForeignKey
		default:
			return 0, err
		}
	}

	return id, nil
}

func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT id, title, COALESCE(content, ''), user_id, likes
		FROM blogs
		WHERE id = $1`

	var blog Blog

	err := m.db.QueryRowContext(ctx, query, id).Scan(&blog.ID, &blog.Title, &blog.Content, &blog.UserID, &blog.Likes)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT id, title, COALESCE(content, ''), user_id, likes
		FROM blogs
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.UserID, &blog.Likes)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) getBlogsByUserId(ctx context.Context, userID int) ([]Blog, error) {
	query := `
		SELECT id, title, COALESCE(content, ''), user_id, likes
		FROM blogs
		WHERE user_id = $1
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Content, &blog.UserID, &blog.Likes)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// updateBlog overwrites title and content in full. The owning user_id is
// immutable after creation.
func (m *BlogModel) updateBlog(ctx context.Context, id int, title, content string) error {
	query := `
		UPDATE blogs
		SET title = $1, content = $2
		WHERE id = $3`

	res, err := m.db.ExecContext(ctx, query, title, content, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// deleteBlog removes the blog by id; its comments cascade away in the
// storage engine. Ownership is checked by the caller, not here.
func (m *BlogModel) deleteBlog(ctx context.Context, id int) error {
	query := `
		DELETE FROM blogs
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
		return ErrRecordNotFound
	}

	return nil
}
