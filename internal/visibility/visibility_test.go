package visibility

import (
	"testing"

	"chirp/internal/models"
)

// fakeFollows implements repositories.FollowRepository over a fixed edge set.
type fakeFollows struct {
	edges map[[2]uint]bool
}

func (f *fakeFollows) CreateFollow(*models.Follow) error           { return nil }
func (f *fakeFollows) DeleteFollow(uint, uint) error               { return nil }
func (f *fakeFollows) GetFollowing(uint) ([]models.User, error)    { return nil, nil }
func (f *fakeFollows) GetFollowers(uint) ([]models.User, error)    { return nil, nil }
func (f *fakeFollows) IsFollowing(followerID, followingID uint) (bool, error) {
	return f.edges[[2]uint{followerID, followingID}], nil
}

func TestCanView(t *testing.T) {
	follows := &fakeFollows{edges: map[[2]uint]bool{
		{2, 1}: true, // user 2 follows user 1
	}}
	authorizer := NewAuthorizer(follows)
	post := &models.Post{ID: 10, UserID: 1}

	cases := []struct {
		name     string
		callerID uint
		want     bool
	}{
		{"author sees own post", 1, true},
		{"follower sees post", 2, true},
		{"stranger is denied", 3, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := authorizer.CanView(tc.callerID, post)
			if err != nil {
				t.Fatalf("CanView returned error: %v", err)
			}
			if got != tc.want {
				t.Errorf("CanView(%d) = %v, want %v", tc.callerID, got, tc.want)
			}
		})
	}
}
