package commentservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrBlogForeignKey = errors.New("blog_id does not exist")
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

func foreignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" && pqErr.Constraint == name
	}

	return false
}

func (m *CommentModel) insert(ctx context.Context, content string, blogID, userID int) (int, error) {
	query := `
		INSERT INTO comments (content, blog_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int
	err := m.db.QueryRowContext(ctx, query, content, blogID, userID).Scan(&id)
	if err != nil {
		switch {
		case foreignKeyError(err, "comments_blog_id_fkey"):
			return 0, ErrBlogForeignKey
		case foreignKeyError(err, "comments_user_id_fkey"):
			return 0, ErrUserForeignKey
		default:
			return 0, err
		}
	}

	return id, nil
}

func (m *CommentModel) getCommentById(ctx context.Context, id int) (*Comment, error) {
	query := `
		SELECT id, COALESCE(content, ''), blog_id, user_id
		FROM comments
		WHERE id = $1`

	var comment Comment

	err := m.db.QueryRowContext(ctx, query, id).Scan(&comment.ID, &comment.Content, &comment.BlogID, &comment.UserID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &comment, nil
}

func (m *CommentModel) getCommentsByBlogId(ctx context.Context, blogID int) ([]Comment, error) {
	query := `
		SELECT id, COALESCE(content, ''), blog_id, user_id
		FROM comments
		WHERE blog_id = $1
		ORDER BY id`

	return m.listComments(ctx, query, blogID)
}

func (m *CommentModel) getCommentsByUserId(ctx context.Context, userID int) ([]Comment, error) {
	query := `
		SELECT id, COALESCE(content, ''), blog_id, user_id
		FROM comments
		WHERE user_id = $1
		ORDER BY id`

	return m.listComments(ctx, query, userID)
}

func (m *CommentModel) listComments(ctx context.Context, query string, arg any) ([]Comment, error) {
	rows, err := m.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var comment Comment
		err := rows.Scan(&comment.ID, &comment.Content, &comment.BlogID, &comment.UserID)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}

func (m *CommentModel) updateComment(ctx context.Context, id int, content string) error {
	query := `
		UPDATE comments
		SET content = $1
		WHERE id = $2`

	res, err := m.db.ExecContext(ctx, query, content, id)
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

// deleteComment removes the comment by id. Ownership is checked by the
// caller, not here.
func (m *CommentModel) deleteComment(ctx context.Context, id int) error {
	query := `
		DELETE FROM comments
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
