package api

import (
	"context"

	"github.com/onlyventilateur/ovcli/internal/client/models"
)

// TokenSource supplies the bearer credential for authenticated calls.
// The session store implements it; the api package only ever reads.
type TokenSource interface {
	Token() (string, bool)
}

// AuthResult is the outcome of a successful login or signup: the bearer
// token and the identity it authorizes, always delivered together.
type AuthResult struct {
	Token string
	User  models.User
}

// CreatorDetail is a creator profile together with its posts.
type CreatorDetail struct {
	Creator models.Creator
	Posts   []models.Post
}

// PostDetail is a single post together with its owning creator.
type PostDetail struct {
	Post    models.Post
	Creator models.Creator
}

// FeedPost is a feed entry. Creator is nil when the payload carried no
// nested creator object.
type FeedPost struct {
	Post    models.Post
	Creator *models.Creator
}

// LikeResult is the authoritative like state returned by the server after
// a toggle. It wins over whatever the client speculated.
type LikeResult struct {
	Likes   int  `json:"likes"`
	IsLiked bool `json:"isLiked"`
}

// Client is the transport-agnostic contract for the OnlyVentilateur API.
//
// Contract:
//   - Login/Signup: exchange credentials for an AuthResult.
//   - UpdateProfile: PATCH identity fields, returning the updated identity.
//   - Creators/CreatorByID/Feed/PostByID: read-only entity retrieval with
//     responses already normalized into models values.
//   - ToggleLike: flip the caller's like on a post, returning the
//     authoritative count and membership.
//   - LikedPostIDs: ids of posts liked by the caller.
//   - SubscribedCreators/Subscribe/Unsubscribe: the caller's subscription
//     set and its mutations.
//   - Close: release underlying transport resources.
//
// All methods must honor context cancellation/timeouts. Failures are
// sentinel errors or *Error values matchable with errors.Is.
type Client interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Signup(ctx context.Context, email, username, password string) (*AuthResult, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.User, error)

	Creators(ctx context.Context) ([]models.Creator, error)
	CreatorByID(ctx context.Context, id string) (*CreatorDetail, error)
	Feed(ctx context.Context) ([]FeedPost, error)
	PostByID(ctx context.Context, id string) (*PostDetail, error)

	ToggleLike(ctx context.Context, postID string) (*LikeResult, error)
	LikedPostIDs(ctx context.Context) ([]string, error)

	SubscribedCreators(ctx context.Context) ([]models.Creator, error)
	Subscribe(ctx context.Context, creatorID string) error
	Unsubscribe(ctx context.Context, creatorID string) error

	Close() error
}
