package viewmodels

import (
	"context"
	"fmt"
	"sync"

	"github.com/onlyventilateur/ovcli/internal/client/api"
	"github.com/onlyventilateur/ovcli/internal/client/fetch"
	"github.com/onlyventilateur/ovcli/internal/client/models"
	"github.com/onlyventilateur/ovcli/internal/client/optimistic"
	"github.com/onlyventilateur/ovcli/internal/client/session"
	"github.com/onlyventilateur/ovcli/internal/logging"
)

// PostDetail assembles a single post's screen: the post, its owning
// creator, and the caller's like state. A missing or broken post is
// reported as api.ErrNotFound so the caller can fall back to the feed
// instead of rendering a broken page.
type PostDetail struct {
	mu      sync.Mutex
	api     api.Client
	session *session.Store
	likes   *optimistic.Controller
	guard   *fetch.Guard
	log     logging.Logger

	postID  string
	post    *models.Post
	creator models.Creator
	liked   bool
}

func NewPostDetail(client api.Client, store *session.Store, log logging.Logger) *PostDetail {
	return &PostDetail{
		api:     client,
		session: store,
		likes:   optimistic.NewController(),
		guard:   fetch.NewGuard(),
		log:     log,
	}
}

// Load fetches the post and its creator, then, best-effort, whether the
// caller has liked it. Supersedes any earlier in-flight load.
func (v *PostDetail) Load(ctx context.Context, postID string) error {
	token := v.guard.Begin()

	detail, err := v.api.PostByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("load post %s: %w", postID, err)
	}

	liked := false
	if v.session.IsAuthenticated() {
		if ids, err := v.api.LikedPostIDs(ctx); err != nil {
			v.log.Debug(ctx, "liked ids unavailable, degrading to empty", "err", err)
		} else {
			for _, id := range ids {
				if id == postID {
					liked = true
					break
				}
			}
		}
	}

	if !token.Live() {
		v.log.Debug(ctx, "discarding superseded post response", "post", postID)
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.postID = postID
	v.post = &detail.Post
	v.creator = detail.Creator
	v.liked = liked
	return nil
}

func (v *PostDetail) Post() (models.Post, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.post == nil {
		return models.Post{}, false
	}
	return *v.post, true
}

func (v *PostDetail) Creator() models.Creator {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.creator
}

func (v *PostDetail) Likes() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.post == nil {
		return 0
	}
	return v.post.Likes
}

func (v *PostDetail) IsLiked() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.liked
}

// Locked reports whether the premium content is hidden from the caller.
func (v *PostDetail) Locked() bool {
	v.mu.Lock()
	locked := v.post != nil && v.post.IsLocked
	v.mu.Unlock()
	return locked && !v.session.IsAuthenticated()
}

// HandleLike toggles the caller's like: count and membership flip
// immediately, the server's {likes, isLiked} wins on success, and the
// exact prior state is restored on failure.
func (v *PostDetail) HandleLike(ctx context.Context) error {
	if !v.session.IsAuthenticated() {
		return ErrAuthRequired
	}

	v.mu.Lock()
	postID := v.postID
	v.mu.Unlock()
	if postID == "" {
		return fmt.Errorf("no post loaded")
	}

	return optimistic.Do(ctx, v.likes, postID, optimistic.Mutation[models.LikeState]{
		Current: func() models.LikeState {
			v.mu.Lock()
			defer v.mu.Unlock()
			state := models.LikeState{Liked: v.liked}
			if v.post != nil {
				state.Likes = v.post.Likes
			}
			return state
		},
		Apply: func(s models.LikeState) {
			v.mu.Lock()
			defer v.mu.Unlock()
			if v.post != nil {
				v.post.Likes = s.Likes
			}
			v.liked = s.Liked
		},
		Speculate: func(prev models.LikeState) models.LikeState {
			return speculateLike(prev)
		},
		Commit: func(ctx context.Context) (models.LikeState, error) {
			res, err := v.api.ToggleLike(ctx, postID)
			if err != nil {
				return models.LikeState{}, err
			}
			return models.LikeState{Likes: res.Likes, Liked: res.IsLiked}, nil
		},
		Reconcile: func(server models.LikeState) models.LikeState { return server },
	})
}

// Close invalidates any fetch still in flight.
func (v *PostDetail) Close() {
	v.guard.Close()
}
