// Package visibility holds the single predicate that gates every read of an
// individual post: its detail, its likes and its replies all apply the same
// check. Divergence between those endpoints is a correctness bug.
package visibility

import (
	"chirp/internal/models"
	"chirp/internal/repositories"
)

// Authorizer decides whether a caller may view a given post.
type Authorizer struct {
	followRepository repositories.FollowRepository
}

// NewAuthorizer creates an Authorizer backed by the follow graph.
func NewAuthorizer(followRepo repositories.FollowRepository) *Authorizer {
	return &Authorizer{followRepository: followRepo}
}

// CanView reports whether callerID is the post's author or follows them.
func (a *Authorizer) CanView(callerID uint, post *models.Post) (bool, error) {
	if callerID == post.UserID {
		return true, nil
	}
	return a.followRepository.IsFollowing(callerID, post.UserID)
}
