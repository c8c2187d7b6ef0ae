package commentservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amberlee2706/scribe/internal/common"
)

type noopProducer struct{}

func (noopProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	return nil
}

func setupTestEnvironment(t *testing.T) (*CommentService, *sql.DB, int, int) {
	db := common.TestDB(t)

	var userID, blogID int
	err := db.QueryRow("INSERT INTO users (name, password) VALUES ($1, $2) RETURNING id", "commenter", "x").Scan(&userID)
	if err != nil {
		t.Fatalf("could not create test user: %v", err)
	}

	err = db.QueryRow("INSERT INTO blogs (title, content, user_id) VALUES ($1, $2, $3) RETURNING id", "target", "body", userID).Scan(&blogID)
	if err != nil {
		t.Fatalf("could not create test blog: %v", err)
	}

	return NewCommentService(db, noopProducer{}), db, userID, blogID
}

func TestCreateComment(t *testing.T) {
	s, db, userID, blogID := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.CreateComment(ctx, &CreateCommentRequest{Content: "nice!", BlogID: blogID, UserID: userID})
	assert.NoError(t, err)
	assert.Greater(t, id, 0)

	var content string
	err = db.QueryRow("SELECT content FROM comments WHERE id = $1", id).Scan(&content)
	assert.NoError(t, err)
	assert.Equal(t, "nice!", content)
}

func TestCreateCommentUnknownBlog(t *testing.T) {
	s, _, userID, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.CreateComment(ctx, &CreateCommentRequest{Content: "lost", BlogID: 99999, UserID: userID})
	assert.ErrorIs(t, err, ErrBlogForeignKey)
}

func TestCreateCommentValidation(t *testing.T) {
	s, _, userID, blogID := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.CreateComment(ctx, &CreateCommentRequest{BlogID: blogID, UserID: userID})
	assert.ErrorAs(t, err, &common.ValidationError{})

	_, err = s.CreateComment(ctx, &CreateCommentRequest{Content: "no blog", UserID: userID})
	assert.ErrorAs(t, err, &common.ValidationError{})
}

func TestGetCommentByID(t *testing.T) {
	s, _, userID, blogID := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.CreateComment(ctx, &CreateCommentRequest{Content: "findable", BlogID: blogID, UserID: userID})
	assert.NoError(t, err)

	comment, err := s.GetCommentByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, blogID, comment.BlogID)
	assert.Equal(t, userID, comment.UserID)

	_, err = s.GetCommentByID(ctx, 99999)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGetCommentsByBlogId(t *testing.T) {
	s, db, userID, blogID := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var otherBlogID int
	err := db.QueryRow("INSERT INTO blogs (title, content, user_id) VALUES ($1, $2, $3) RETURNING id", "other", "x", userID).Scan(&otherBlogID)
	assert.NoError(t, err)

	_, err = s.CreateComment(ctx, &CreateCommentRequest{Content: "one", BlogID: blogID, UserID: userID})
	assert.NoError(t, err)
	_, err = s.CreateComment(ctx, &CreateCommentRequest{Content: "two", BlogID: blogID, UserID: userID})
	assert.NoError(t, err)
	_, err = s.CreateComment(ctx, &CreateCommentRequest{Content: "elsewhere", BlogID: otherBlogID, UserID: userID})
	assert.NoError(t, err)

	comments, err := s.GetCommentsByBlogId(ctx, blogID)
	assert.NoError(t, err)
	assert.Len(t, comments, 2)

	comments, err = s.GetCommentsByBlogId(ctx, 99999)
	assert.NoError(t, err)
	assert.Empty(t, comments)
}

func TestGetCommentsByUserId(t *testing.T) {
	s, db, userID, blogID := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var otherID int
	err := db.QueryRow("INSERT INTO users (name, password) VALUES ($1, $2) RETURNING id", "other", "x").Scan(&otherID)
	assert.NoError(t, err)

	_, err = s.CreateComment(ctx, &CreateCommentRequest{Content: "mine", BlogID: blogID, UserID: userID})
	assert.NoError(t, err)
	_, err = s.CreateComment(ctx, &CreateCommentRequest{Content: "theirs", BlogID: blogID, UserID: otherID})
	assert.NoError(t, err)

	comments, err := s.GetCommentsByUserId(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, "mine", comments[0].Content)
}

func TestUpdateComment(t *testing.T) {
	s, _, userID, blogID := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.CreateComment(ctx, &CreateCommentRequest{Content: "before", BlogID: blogID, UserID: userID})
	assert.NoError(t, err)

	err = s.UpdateComment(ctx, id, "after")
	assert.NoError(t, err)

	comment, err := s.GetCommentByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "after", comment.Content)

	err = s.UpdateComment(ctx, 99999, "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestDeleteComment(t *testing.T) {
	s, _, userID, blogID := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.CreateComment(ctx, &CreateCommentRequest{Content: "doomed", BlogID: blogID, UserID: userID})
	assert.NoError(t, err)

	err = s.DeleteComment(ctx, id)
	assert.NoError(t, err)

	_, err = s.GetCommentByID(ctx, id)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	err = s.DeleteComment(ctx, id)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
