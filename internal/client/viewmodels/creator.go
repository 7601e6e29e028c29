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

// CreatorProfile assembles one creator's screen: the profile, its posts,
// and the caller's subscription state, with subscribe/unsubscribe and like
// toggles running through the optimistic controller.
//
// Load is keyed by a changing creator id: navigating to another profile
// while a fetch is in flight supersedes it, and the stale response is
// discarded instead of overwriting the newer profile's state.
type CreatorProfile struct {
	mu      sync.Mutex
	api     api.Client
	session *session.Store
	subs    *optimistic.Controller
	likes   *optimistic.Controller
	guard   *fetch.Guard
	log     logging.Logger

	creatorID  string
	creator    *models.Creator
	posts      []models.Post
	subscribed bool
	liked      map[string]bool
}

func NewCreatorProfile(client api.Client, store *session.Store, log logging.Logger) *CreatorProfile {
	return &CreatorProfile{
		api:     client,
		session: store,
		subs:    optimistic.NewController(),
		likes:   optimistic.NewController(),
		guard:   fetch.NewGuard(),
		log:     log,
		liked:   make(map[string]bool),
	}
}

// Load fetches the creator and its posts. The detail fetch is primary
// content: a failure (including not-found) is returned so the caller can
// fall back to the directory. The subscription check and liked set are
// best-effort and degrade silently.
func (v *CreatorProfile) Load(ctx context.Context, creatorID string) error {
	token := v.guard.Begin()

	detail, err := v.api.CreatorByID(ctx, creatorID)
	if err != nil {
		return fmt.Errorf("load creator %s: %w", creatorID, err)
	}

	subscribed := false
	liked := make(map[string]bool)
	if v.session.IsAuthenticated() {
		if creators, err := v.api.SubscribedCreators(ctx); err != nil {
			v.log.Debug(ctx, "subscription check unavailable", "err", err)
		} else {
			for _, c := range creators {
				if c.ID == creatorID {
					subscribed = true
					break
				}
			}
		}
		if ids, err := v.api.LikedPostIDs(ctx); err != nil {
			v.log.Debug(ctx, "liked ids unavailable, degrading to empty", "err", err)
		} else {
			for _, id := range ids {
				liked[id] = true
			}
		}
	}

	if !token.Live() {
		v.log.Debug(ctx, "discarding superseded creator response", "creator", creatorID)
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.creatorID = creatorID
	v.creator = &detail.Creator
	v.posts = detail.Posts
	v.subscribed = subscribed
	v.liked = liked
	return nil
}

func (v *CreatorProfile) Creator() (models.Creator, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.creator == nil {
		return models.Creator{}, false
	}
	return *v.creator, true
}

func (v *CreatorProfile) Posts() []models.Post {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Post, len(v.posts))
	copy(out, v.posts)
	return out
}

func (v *CreatorProfile) IsSubscribed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.subscribed
}

func (v *CreatorProfile) IsLiked(postID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.liked[postID]
}

// HandleSubscribe toggles the caller's subscription to the loaded creator.
// The subscribed flag and subscriber count change speculatively; the
// server sends no authoritative echo back, so on success the speculative
// value stands, and on failure the exact prior state is restored.
// Anonymous callers get ErrAuthRequired with no network traffic.
func (v *CreatorProfile) HandleSubscribe(ctx context.Context) error {
	if !v.session.IsAuthenticated() {
		return ErrAuthRequired
	}

	v.mu.Lock()
	creatorID := v.creatorID
	v.mu.Unlock()
	if creatorID == "" {
		return fmt.Errorf("no creator loaded")
	}

	return optimistic.Do(ctx, v.subs, creatorID, optimistic.Mutation[models.SubscriptionState]{
		Current: func() models.SubscriptionState { return v.subscriptionState() },
		Apply:   func(s models.SubscriptionState) { v.applySubscriptionState(s) },
		Speculate: func(prev models.SubscriptionState) models.SubscriptionState {
			if prev.Subscribed {
				return models.SubscriptionState{Subscribed: false, SubscriberCount: max(0, prev.SubscriberCount-1)}
			}
			return models.SubscriptionState{Subscribed: true, SubscriberCount: prev.SubscriberCount + 1}
		},
		Commit: func(ctx context.Context) (models.SubscriptionState, error) {
			v.mu.Lock()
			subscribed := v.subscribed
			v.mu.Unlock()
			// the flag already holds the speculative value; the wire call
			// matches the direction of the toggle
			if subscribed {
				return models.SubscriptionState{}, v.api.Subscribe(ctx, creatorID)
			}
			return models.SubscriptionState{}, v.api.Unsubscribe(ctx, creatorID)
		},
	})
}

func (v *CreatorProfile) subscriptionState() models.SubscriptionState {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := models.SubscriptionState{Subscribed: v.subscribed}
	if v.creator != nil {
		state.SubscriberCount = v.creator.SubscriberCount
	}
	return state
}

func (v *CreatorProfile) applySubscriptionState(s models.SubscriptionState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.subscribed = s.Subscribed
	if v.creator != nil {
		v.creator.SubscriberCount = s.SubscriberCount
	}
}

// HandleLike toggles the caller's like on one of the loaded posts.
func (v *CreatorProfile) HandleLike(ctx context.Context, postID string) error {
	if !v.session.IsAuthenticated() {
		return ErrAuthRequired
	}

	return optimistic.Do(ctx, v.likes, postID, optimistic.Mutation[models.LikeState]{
		Current: func() models.LikeState { return v.likeState(postID) },
		Apply:   func(s models.LikeState) { v.applyLikeState(postID, s) },
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

func (v *CreatorProfile) likeState(postID string) models.LikeState {
	v.mu.Lock()
	defer v.mu.Unlock()
	state := models.LikeState{Liked: v.liked[postID]}
	for i := range v.posts {
		if v.posts[i].ID == postID {
			state.Likes = v.posts[i].Likes
			break
		}
	}
	return state
}

func (v *CreatorProfile) applyLikeState(postID string, s models.LikeState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i := range v.posts {
		if v.posts[i].ID == postID {
			v.posts[i].Likes = s.Likes
			break
		}
	}
	if s.Liked {
		v.liked[postID] = true
	} else {
		delete(v.liked, postID)
	}
}

// Close invalidates any fetch still in flight.
func (v *CreatorProfile) Close() {
	v.guard.Close()
}
