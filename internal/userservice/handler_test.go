package userservice

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amberlee2706/scribe/internal/common"
)

// recordingProducer captures published events so service tests do not need
// a live broker.
type recordingProducer struct {
	mu     sync.Mutex
	events []common.BindingKey
}

func (p *recordingProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, key)
	return nil
}

func (p *recordingProducer) keys() []common.BindingKey {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]common.BindingKey(nil), p.events...)
}

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, *recordingProducer) {
	db := common.TestDB(t)
	mb := &recordingProducer{}

	s := NewUserService(db, mb, TokenConfig{
		Secret:    "test-signing-secret",
		Algorithm: "HS256",
		TTL:       15 * time.Minute,
	})

	return s, db, mb
}

func TestCreateUser(t *testing.T) {
	s, db, mb := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.CreateUser(ctx, "alice", "pw1")
	assert.NoError(t, err)
	assert.Greater(t, id, 0)

	var hash string
	err = db.QueryRow("SELECT password FROM users WHERE id = $1", id).Scan(&hash)
	assert.NoError(t, err)
	// Stored value is a salted digest, never the plain password.
	assert.NotEqual(t, "pw1", hash)
	assert.Contains(t, hash, "$argon2id$")

	assert.Equal(t, []common.BindingKey{common.UserCreatedKey}, mb.keys())
}

func TestCreateUserDuplicateName(t *testing.T) {
	s, _, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.CreateUser(ctx, "alice", "pw1")
	assert.NoError(t, err)

	_, err = s.CreateUser(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestCreateUserValidation(t *testing.T) {
	s, _, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.CreateUser(ctx, "", "pw1")
	assert.ErrorAs(t, err, &common.ValidationError{})

	_, err = s.CreateUser(ctx, "alice", "")
	assert.ErrorAs(t, err, &common.ValidationError{})
}

func TestLoginUser(t *testing.T) {
	s, _, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.CreateUser(ctx, "alice", "pw1")
	assert.NoError(t, err)

	token, err := s.LoginUser(ctx, "alice", "pw1")
	assert.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	user, err := s.GetUserByAccessToken(ctx, token.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice", user.Name)
}

func TestLoginUserBadCredentials(t *testing.T) {
	s, _, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.CreateUser(ctx, "alice", "pw1")
	assert.NoError(t, err)

	_, err = s.LoginUser(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrAuthenticationFailure)

	_, err = s.LoginUser(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, ErrAuthenticationFailure)
}

func TestGetUserByAccessTokenDeletedUser(t *testing.T) {
	s, _, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.CreateUser(ctx, "alice", "pw1")
	assert.NoError(t, err)

	token, err := s.LoginUser(ctx, "alice", "pw1")
	assert.NoError(t, err)

	err = s.DeleteUser(ctx, id)
	assert.NoError(t, err)

	// The token still verifies cryptographically but the subject is gone.
	_, err = s.GetUserByAccessToken(ctx, token.AccessToken)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserByAccessTokenInvalid(t *testing.T) {
	s, _, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.GetUserByAccessToken(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserExists(t *testing.T) {
	s, _, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.UserExists(ctx, "alice")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.CreateUser(ctx, "alice", "pw1")
	assert.NoError(t, err)

	user, err := s.UserExists(ctx, "alice")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
}

func TestUpdateUser(t *testing.T) {
	s, db, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.CreateUser(ctx, "alice", "pw1")
	assert.NoError(t, err)

	var before string
	err = db.QueryRow("SELECT password FROM users WHERE id = $1", id).Scan(&before)
	assert.NoError(t, err)

	err = s.UpdateUser(ctx, id, "alice2", "pw2")
	assert.NoError(t, err)

	var name, after string
	err = db.QueryRow("SELECT name, password FROM users WHERE id = $1", id).Scan(&name, &after)
	assert.NoError(t, err)
	assert.Equal(t, "alice2", name)
	assert.NotEqual(t, before, after)

	// Old credentials no longer work, new ones do.
	_, err = s.LoginUser(ctx, "alice2", "pw1")
	assert.ErrorIs(t, err, ErrAuthenticationFailure)

	_, err = s.LoginUser(ctx, "alice2", "pw2")
	assert.NoError(t, err)
}

func TestUpdateUserNotFound(t *testing.T) {
	s, _, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := s.UpdateUser(ctx, 999, "ghost", "pw")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUserCascade(t *testing.T) {
	s, db, _ := setupTestEnvironment(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.CreateUser(ctx, "alice", "pw1")
	assert.NoError(t, err)

	var blogID int
	err = db.QueryRow("INSERT INTO blogs (title, content, user_id) VALUES ($1, $2, $3) RETURNING id", "title", "content", id).Scan(&blogID)
	assert.NoError(t, err)

	_, err = db.Exec("INSERT INTO comments (content, blog_id, user_id) VALUES ($1, $2, $3)", "hi", blogID, id)
	assert.NoError(t, err)

	err = s.DeleteUser(ctx, id)
	assert.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM blogs WHERE user_id = $1", id).Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	err = db.QueryRow("SELECT COUNT(*) FROM comments WHERE user_id = $1", id).Scan(&count)
	assert.NoError(t, err)
	assert.Equal(t, 0, count)

	err = s.DeleteUser(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
