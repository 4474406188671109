package repositories

import (
	"chirp/internal/models"

	"gorm.io/gorm"
)

// ReplyRepository defines the interface for reply data operations
type ReplyRepository interface {
	CreateReply(reply *models.Reply) error
	GetRepliesByPostID(postID uint) ([]models.ReplyView, error)
}

// PostgresReplyRepository implements ReplyRepository for PostgreSQL
type PostgresReplyRepository struct {
	db *gorm.DB
}

// NewPostgresReplyRepository creates a new PostgresReplyRepository
func NewPostgresReplyRepository(db *gorm.DB) *PostgresReplyRepository {
	return &PostgresReplyRepository{db: db}
}

// CreateReply inserts a new reply with a server-assigned timestamp
func (r *PostgresReplyRepository) CreateReply(reply *models.Reply) error {
	return r.db.Create(reply).Error
}

// GetRepliesByPostID returns (author name, body) rows for a post, oldest first
func (r *PostgresReplyRepository) GetRepliesByPostID(postID uint) ([]models.ReplyView, error) {
	var replies []models.ReplyView
	err := r.db.Model(&models.Reply{}).
		Select("users.name AS author_name, replies.body, replies.created_at").
		Joins("JOIN users ON users.id = replies.user_id").
		Where("replies.post_id = ?", postID).
		Order("replies.created_at ASC, replies.id ASC").
		Scan(&replies).Error
	return replies, err
}
