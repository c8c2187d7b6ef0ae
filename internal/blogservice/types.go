package blogservice

import (
	"database/sql"

	"github.com/amberlee2706/scribe/internal/common"
)

type Blog struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	UserID  int    `json:"user_id"`
	// Likes is persisted with a zero default; no operation mutates it yet.
	Likes int64 `json:"likes"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m  *BlogModel
	mb common.MessageProducer
	c  *common.Cache
}
