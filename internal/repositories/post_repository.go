package repositories

import (
	"chirp/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	DeleteOwnedPost(postID, userID uint) (bool, error)
	GetFeed(userID uint, limit int) ([]models.FeedPost, error)
	GetPostsWithCounts(userID uint) ([]models.PostWithCounts, error)
	GetPostCounts(postID uint) (likeCount, replyCount int64, err error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts a new post with a server-assigned timestamp
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post by primary key
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// DeleteOwnedPost deletes the post only if userID is its author. It reports
// whether a row was actually removed, so a concurrent delete of the same id
// is observed as false by the loser.
func (r *PostgresPostRepository) DeleteOwnedPost(postID, userID uint) (bool, error) {
	res := r.db.Where("id = ? AND user_id = ?", postID, userID).Delete(&models.Post{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetFeed returns posts authored by users the given user follows, newest
// first. Ties on created_at are broken by id so the order is total.
func (r *PostgresPostRepository) GetFeed(userID uint, limit int) ([]models.FeedPost, error) {
	var feed []models.FeedPost
	following := r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", userID)
	err := r.db.Model(&models.Post{}).
		Select("posts.id, posts.user_id, posts.body, posts.created_at, users.username AS author_username, users.name AS author_name").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("posts.user_id IN (?)", following).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Scan(&feed).Error
	return feed, err
}

// GetPostsWithCounts returns the user's own posts with like/reply counts
// computed at read time from the underlying rows.
func (r *PostgresPostRepository) GetPostsWithCounts(userID uint) ([]models.PostWithCounts, error) {
	var posts []models.PostWithCounts
	likeCount := r.db.Model(&models.Like{}).Select("count(*)").Where("likes.post_id = posts.id")
	replyCount := r.db.Model(&models.Reply{}).Select("count(*)").Where("replies.post_id = posts.id")
	err := r.db.Model(&models.Post{}).
		Select("posts.id, posts.user_id, posts.body, posts.created_at, (?) AS like_count, (?) AS reply_count", likeCount, replyCount).
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Scan(&posts).Error
	return posts, err
}

// GetPostCounts returns the like and reply counts for a single post
func (r *PostgresPostRepository) GetPostCounts(postID uint) (int64, int64, error) {
	var likeCount, replyCount int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&likeCount).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.Model(&models.Reply{}).Where("post_id = ?", postID).Count(&replyCount).Error; err != nil {
		return 0, 0, err
	}
	return likeCount, replyCount, nil
}
