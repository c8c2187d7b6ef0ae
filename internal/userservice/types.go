package userservice

import (
	"database/sql"
	"time"

	"github.com/amberlee2706/scribe/internal/common"
)

type UserService struct {
	m   *DBModel
	mb  common.MessageProducer
	cfg TokenConfig
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Password Password `json:"-"`
}

type Password struct {
	Plain string `json:"-"`
	hash  string `json:"-"`
}

// AuthToken is the login response payload: a stateless signed access
// token. Expiry is derived from the token itself and not exposed.
type AuthToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Expiry      time.Time `json:"-"`
}

var AnonymousUser = User{}
