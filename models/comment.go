package models

import (
	"time"
)

type CommentStatus string

const (
	CommentWaiting     CommentStatus = "waiting"
	CommentApproved    CommentStatus = "approved"
	CommentNotApproved CommentStatus = "not_approved"
)

func (s CommentStatus) Valid() bool {
	switch s {
	case CommentWaiting, CommentApproved, CommentNotApproved:
		return true
	}
	return false
}

type Comment struct {
	ID        int64         `json:"id" db:"id"`
	ProductID int64         `json:"product_id" db:"product_id"`
	Name      string        `json:"name" db:"name"`
	Body      string        `json:"body" db:"body"`
	Status    CommentStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}

func (Comment) CreateTableSQL() string {
	return `
	CREATE TABLE IF NOT EXISTS comments (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		body TEXT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'waiting'
			CHECK (status IN ('waiting', 'approved', 'not_approved')),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_comments_product ON comments(product_id);`
}
