package blogservice

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/amberlee2706/scribe/internal/common"
)

func NewBlogService(db *sql.DB, mb common.MessageProducer, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), mb: mb, c: c}
}

type CreateBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int    `json:"user_id"`
}

// CreateBlog creates a new blog post owned by req.UserID and publishes a
// blog.created event. Content may be empty; the title may not.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (int, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	id, err := s.m.insert(ctx, req.Title, req.Content, req.UserID)
	if err != nil {
		return 0, err
	}

	event, err := json.Marshal(struct {
		ID     int    `json:"id"`
		UserID int    `json:"user_id"`
		Title  string `json:"title"`
	}{ID: id, UserID: req.UserID, Title: req.Title})
	if err != nil {
		return 0, err
	}

	err = s.mb.Publish(ctx, event, common.BlogCreatedKey, common.EventExchange)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetBlogByID returns a blog post by its ID, consulting the cache first.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if cached, ok := s.c.Get(common.CacheKeyBlog(id)); ok {
		return cached.(*Blog), nil
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlog(id), blog)

	return blog, nil
}

// GetBlogs returns all blog posts.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.getBlogs(ctx)
}

// GetBlogsByUserId returns all blog posts owned by a user. An unknown user
// simply yields an empty list.
func (s *BlogService) GetBlogsByUserId(ctx context.Context, userID int) ([]Blog, error) {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogsByUserId(ctx, userID)
}

// EvictUserBlogs drops the user's blogs from the cache. Deleting a user
// removes their blogs through the storage cascade without going through
// DeleteBlog, so the transport layer calls this before the user row goes
// away; otherwise a previously read blog would keep serving from cache
// until its TTL expired.
func (s *BlogService) EvictUserBlogs(ctx context.Context, userID int) error {
	blogs, err := s.m.getBlogsByUserId(ctx, userID)
	if err != nil {
		return err
	}

	for _, blog := range blogs {
		s.c.Delete(common.CacheKeyBlog(blog.ID))
	}

	return nil
}

// UpdateBlog overwrites title and content of a blog post. Ownership is
// enforced by the caller before this is reached.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, title, content string) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateTitle(v, title)
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.updateBlog(ctx, id, title, content)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(id))

	return nil
}

// DeleteBlog deletes a blog post by id. Ownership is enforced by the
// caller before this is reached.
func (s *BlogService) DeleteBlog(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.deleteBlog(ctx, id)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlog(id))

	return nil
}
