package handlers

import (
	"sort"
	"sync"
	"time"

	"chirp/internal/models"
	"chirp/internal/repositories"

	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the Postgres repositories. It
// implements every repository interface so handler tests run without a
// database while keeping the same error contracts.
type memStore struct {
	mu      sync.Mutex
	users   map[uint]*models.User
	posts   map[uint]*models.Post
	follows map[[2]uint]time.Time
	likes   []models.Like
	replies []models.Reply
	nextID  uint
}

func newMemStore() *memStore {
	return &memStore{
		users:   make(map[uint]*models.User),
		posts:   make(map[uint]*models.Post),
		follows: make(map[[2]uint]time.Time),
	}
}

func (s *memStore) nextIDLocked() uint {
	s.nextID++
	return s.nextID
}

// addUser seeds a user and returns it.
func (s *memStore) addUser(username, name string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &models.User{
		ID:       s.nextIDLocked(),
		Username: username,
		Name:     name,
		Gender:   "other",
	}
	s.users[user.ID] = user
	return user
}

// addPost seeds a post with an explicit timestamp.
func (s *memStore) addPost(userID uint, body string, createdAt time.Time) *models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	post := &models.Post{
		ID:        s.nextIDLocked(),
		UserID:    userID,
		Body:      body,
		CreatedAt: createdAt,
	}
	s.posts[post.ID] = post
	return post
}

// --- UserRepository ---

func (s *memStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = s.nextIDLocked()
	s.users[user.ID] = user
	return nil
}

func (s *memStore) GetUserByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *memStore) GetUserByUsername(username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// --- PostRepository ---

func (s *memStore) CreatePost(post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = s.nextIDLocked()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	s.posts[post.ID] = post
	return nil
}

func (s *memStore) GetPostByID(id uint) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return post, nil
}

func (s *memStore) DeleteOwnedPost(postID, userID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok || post.UserID != userID {
		return false, nil
	}
	delete(s.posts, postID)
	return true, nil
}

func (s *memStore) GetFeed(userID uint, limit int) ([]models.FeedPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var feed []models.FeedPost
	for _, post := range s.posts {
		if _, ok := s.follows[[2]uint{userID, post.UserID}]; !ok {
			continue
		}
		author := s.users[post.UserID]
		feed = append(feed, models.FeedPost{
			ID:             post.ID,
			UserID:         post.UserID,
			Body:           post.Body,
			CreatedAt:      post.CreatedAt,
			AuthorUsername: author.Username,
			AuthorName:     author.Name,
		})
	}
	sort.Slice(feed, func(i, j int) bool {
		if !feed[i].CreatedAt.Equal(feed[j].CreatedAt) {
			return feed[i].CreatedAt.After(feed[j].CreatedAt)
		}
		return feed[i].ID > feed[j].ID
	})
	if len(feed) > limit {
		feed = feed[:limit]
	}
	return feed, nil
}

func (s *memStore) GetPostsWithCounts(userID uint) ([]models.PostWithCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []models.PostWithCounts
	for _, post := range s.posts {
		if post.UserID != userID {
			continue
		}
		likeCount, replyCount := s.countsLocked(post.ID)
		posts = append(posts, models.PostWithCounts{
			ID:         post.ID,
			UserID:     post.UserID,
			Body:       post.Body,
			CreatedAt:  post.CreatedAt,
			LikeCount:  likeCount,
			ReplyCount: replyCount,
		})
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	return posts, nil
}

func (s *memStore) GetPostCounts(postID uint) (int64, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	likeCount, replyCount := s.countsLocked(postID)
	return likeCount, replyCount, nil
}

func (s *memStore) countsLocked(postID uint) (int64, int64) {
	var likeCount, replyCount int64
	for _, l := range s.likes {
		if l.PostID == postID {
			likeCount++
		}
	}
	for _, r := range s.replies {
		if r.PostID == postID {
			replyCount++
		}
	}
	return likeCount, replyCount
}

// --- FollowRepository ---

func (s *memStore) CreateFollow(follow *models.Follow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uint{follow.FollowerID, follow.FollowingID}
	if _, ok := s.follows[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	follow.ID = s.nextIDLocked()
	s.follows[key] = time.Now()
	return nil
}

func (s *memStore) DeleteFollow(followerID, followingID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uint{followerID, followingID}
	if _, ok := s.follows[key]; !ok {
		return repositories.ErrFollowNotFound
	}
	delete(s.follows, key)
	return nil
}

func (s *memStore) IsFollowing(followerID, followingID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.follows[[2]uint{followerID, followingID}]
	return ok, nil
}

func (s *memStore) GetFollowing(userID uint) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for key := range s.follows {
		if key[0] == userID {
			users = append(users, *s.users[key[1]])
		}
	}
	sortUsersByName(users)
	return users, nil
}

func (s *memStore) GetFollowers(userID uint) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for key := range s.follows {
		if key[1] == userID {
			users = append(users, *s.users[key[0]])
		}
	}
	sortUsersByName(users)
	return users, nil
}

func sortUsersByName(users []models.User) {
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
}

// --- LikeRepository ---

func (s *memStore) CreateLike(like *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.likes {
		if l.PostID == like.PostID && l.UserID == like.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	like.ID = s.nextIDLocked()
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	s.likes = append(s.likes, *like)
	return nil
}

func (s *memStore) DeleteLike(postID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.likes {
		if l.PostID == postID && l.UserID == userID {
			s.likes = append(s.likes[:i], s.likes[i+1:]...)
			return nil
		}
	}
	return repositories.ErrLikeNotFound
}

func (s *memStore) HasUserLikedPost(postID, userID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.likes {
		if l.PostID == postID && l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) GetLikers(postID uint) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var usernames []string
	for _, l := range s.likes {
		if l.PostID == postID {
			usernames = append(usernames, s.users[l.UserID].Username)
		}
	}
	return usernames, nil
}

// --- ReplyRepository ---

func (s *memStore) CreateReply(reply *models.Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reply.ID = s.nextIDLocked()
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now()
	}
	s.replies = append(s.replies, *reply)
	return nil
}

func (s *memStore) GetRepliesByPostID(postID uint) ([]models.ReplyView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var views []models.ReplyView
	for _, r := range s.replies {
		if r.PostID == postID {
			views = append(views, models.ReplyView{
				AuthorName: s.users[r.UserID].Name,
				Body:       r.Body,
				CreatedAt:  r.CreatedAt,
			})
		}
	}
	return views, nil
}
