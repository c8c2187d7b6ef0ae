package commentservice

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/amberlee2706/scribe/internal/common"
)

func NewCommentService(db *sql.DB, mb common.MessageProducer) *CommentService {
	return &CommentService{m: newCommentModel(db), mb: mb}
}

type CreateCommentRequest struct {
	Content string `json:"content"`
	BlogID  int    `json:"blog_id"`
	UserID  int    `json:"user_id"`
}

// CreateComment attaches a comment to an existing blog. A nonexistent
// blog_id surfaces as ErrBlogForeignKey from the storage constraint.
func (s *CommentService) CreateComment(ctx context.Context, req *CreateCommentRequest) (int, error) {
	v := common.NewValidator()
	validateContent(v, req.Content)
	validateInt(v, req.BlogID, "blog_id")
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	id, err := s.m.insert(ctx, req.Content, req.BlogID, req.UserID)
	if err != nil {
		return 0, err
	}

	event, err := json.Marshal(struct {
		ID     int `json:"id"`
		BlogID int `json:"blog_id"`
		UserID int `json:"user_id"`
	}{ID: id, BlogID: req.BlogID, UserID: req.UserID})
	if err != nil {
		return 0, err
	}

	err = s.mb.Publish(ctx, event, common.CommentCreatedKey, common.EventExchange)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (s *CommentService) GetCommentByID(ctx context.Context, id int) (*Comment, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getCommentById(ctx, id)
}

// GetCommentsByBlogId returns all comments on a blog. An unknown blog
// simply yields an empty list.
func (s *CommentService) GetCommentsByBlogId(ctx context.Context, blogID int) ([]Comment, error) {
	v := common.NewValidator()
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getCommentsByBlogId(ctx, blogID)
}

// GetCommentsByUserId returns all comments written by a user.
func (s *CommentService) GetCommentsByUserId(ctx context.Context, userID int) ([]Comment, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getCommentsByUserId(ctx, userID)
}

// UpdateComment overwrites the comment content. Ownership is enforced by
// the caller before this is reached.
func (s *CommentService) UpdateComment(ctx context.Context, id int, content string) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateContent(v, content)
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.updateComment(ctx, id, content)
}

// DeleteComment deletes a comment by id. Ownership is enforced by the
// caller before this is reached.
func (s *CommentService) DeleteComment(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteComment(ctx, id)
}
