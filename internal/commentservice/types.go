package commentservice

import (
	"database/sql"

	"github.com/amberlee2706/scribe/internal/common"
)

type Comment struct {
	ID      int    `json:"id"`
	Content string `json:"content"`
	BlogID  int    `json:"blog_id"`
	UserID  int    `json:"user_id"`
}

type CommentModel struct {
	db *sql.DB
}

type CommentService struct {
	m  *CommentModel
	mb common.MessageProducer
}
