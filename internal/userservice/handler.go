package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/amberlee2706/scribe/internal/common"
)

var ErrAuthenticationFailure = errors.New("invalid authentication credentials")

func NewUserService(db *sql.DB, mb common.MessageProducer, cfg TokenConfig) *UserService {
	return &UserService{
		m:   newUserModel(db),
		mb:  mb,
		cfg: cfg,
	}
}

// CreateUser hashes the password, inserts the user and publishes a
// user.created event. A duplicate name surfaces as ErrDuplicateUsername,
// backed by the unique constraint so concurrent signups cannot race past
// the check.
func (s *UserService) CreateUser(ctx context.Context, name, password string) (int, error) {
	v := common.NewValidator()
	validateName(v, name)
	validatePassword(v, password)
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	u := User{Name: name}

	err := u.Password.set(password)
	if err != nil {
		return 0, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return 0, err
	}

	event, err := json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{ID: u.ID, Name: u.Name})
	if err != nil {
		return 0, err
	}

	err = s.mb.Publish(ctx, event, common.UserCreatedKey, common.EventExchange)
	if err != nil {
		return 0, err
	}

	return u.ID, nil
}

// LoginUser verifies the credentials and issues a signed access token.
// Unknown names and wrong passwords are indistinguishable to the caller.
func (s *UserService) LoginUser(ctx context.Context, name, password string) (*AuthToken, error) {
	v := common.NewValidator()
	validateName(v, name)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getUserByName(ctx, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	if !user.Password.compare(password) {
		return nil, ErrAuthenticationFailure
	}

	return newAccessToken(s.cfg, user.ID)
}

// UserExists looks a user up by name. Used as the signup pre-check.
func (s *UserService) UserExists(ctx context.Context, name string) (*User, error) {
	v := common.NewValidator()
	validateName(v, name)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserByName(ctx, name)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getUserById(ctx, id)
}

// GetUserByAccessToken resolves the caller from a bearer token: verify the
// signature and expiry, then confirm the subject still exists. A user
// deleted after issuance fails the existence read; the token itself is
// never revoked.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	id, err := verifyAccessToken(s.cfg, token)
	if err != nil {
		return nil, err
	}

	return s.m.getUserById(ctx, id)
}

// UpdateUser overwrites name and password for the given user id,
// re-hashing the new password.
func (s *UserService) UpdateUser(ctx context.Context, id int, name, password string) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateName(v, name)
	validatePassword(v, password)
	if !v.Valid() {
		return v.ValidationError()
	}

	u := User{ID: id, Name: name}

	err := u.Password.set(password)
	if err != nil {
		return err
	}

	return s.m.updateUser(ctx, &u)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	return s.m.deleteUser(ctx, id)
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
