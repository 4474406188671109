package repositories

import (
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// ErrFollowNotFound is returned when removing a follow edge that does not exist.
var ErrFollowNotFound = errors.New("follow relationship not found")

// FollowRepository defines the interface for follow-edge data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowers(userID uint) ([]models.User, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowing lists the users the given user follows, ordered by name
func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID),
	).Order("name").Find(&users).Error
	return users, err
}

// GetFollowers lists the users following the given user, ordered by name
func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Model(&models.Follow{}).Select("follower_id").Where("following_id = ?", userID),
	).Order("name").Find(&users).Error
	return users, err
}
