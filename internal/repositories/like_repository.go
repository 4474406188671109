package repositories

import (
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// ErrLikeNotFound is returned when deleting a like that does not exist.
var ErrLikeNotFound = errors.New("like not found")

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(postID, userID uint) error
	HasUserLikedPost(postID, userID uint) (bool, error)
	GetLikers(postID uint) ([]string, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like; the unique (post_id, user_id) index rejects duplicates
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike removes the user's like from a post
func (r *PostgresLikeRepository) DeleteLike(postID, userID uint) error {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// HasUserLikedPost checks if a user has liked a specific post
func (r *PostgresLikeRepository) HasUserLikedPost(postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ? AND user_id = ?", postID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetLikers returns the usernames that liked a post, oldest like first
func (r *PostgresLikeRepository) GetLikers(postID uint) ([]string, error) {
	var usernames []string
	err := r.db.Model(&models.Like{}).
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.post_id = ?", postID).
		Order("likes.created_at ASC, likes.id ASC").
		Pluck("users.username", &usernames).Error
	return usernames, err
}
