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

// FeedPageSize is the default page size of the feed listing.
const FeedPageSize = 9

// Feed assembles the post feed: the full fetched list, a creator lookup
// map built from the nested creator payloads, the caller's liked set, and
// client-side pagination over the in-memory list.
type Feed struct {
	mu      sync.Mutex
	api     api.Client
	session *session.Store
	likes   *optimistic.Controller
	guard   *fetch.Guard
	log     logging.Logger

	posts    []models.Post
	creators map[string]models.Creator
	liked    map[string]bool
	page     int
	pageSize int
}

func NewFeed(client api.Client, store *session.Store, log logging.Logger) *Feed {
	return &Feed{
		api:      client,
		session:  store,
		likes:    optimistic.NewController(),
		guard:    fetch.NewGuard(),
		log:      log,
		creators: make(map[string]models.Creator),
		liked:    make(map[string]bool),
		page:     1,
		pageSize: FeedPageSize,
	}
}

// SetPageSize overrides the default page size. Non-positive values are
// ignored.
func (f *Feed) SetPageSize(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n > 0 {
		f.pageSize = n
	}
}

// Load fetches the feed and, best-effort, the caller's liked post ids.
// The feed itself is primary content: its failure is returned for
// screen-level display. The liked set degrades to empty on failure so the
// feed still renders.
func (f *Feed) Load(ctx context.Context) error {
	token := f.guard.Begin()

	entries, err := f.api.Feed(ctx)
	if err != nil {
		return fmt.Errorf("load feed: %w", err)
	}

	liked := make(map[string]bool)
	if f.session.IsAuthenticated() {
		ids, err := f.api.LikedPostIDs(ctx)
		if err != nil {
			f.log.Debug(ctx, "liked ids unavailable, degrading to empty", "err", err)
		}
		for _, id := range ids {
			liked[id] = true
		}
	}

	if !token.Live() {
		f.log.Debug(ctx, "discarding superseded feed response")
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.posts = make([]models.Post, 0, len(entries))
	f.creators = make(map[string]models.Creator)
	for _, e := range entries {
		f.posts = append(f.posts, e.Post)
		if e.Creator != nil {
			if _, seen := f.creators[e.Creator.ID]; !seen {
				f.creators[e.Creator.ID] = *e.Creator
			}
		}
	}
	f.liked = liked
	f.page = 1
	return nil
}

// Page returns the current 1-indexed page.
func (f *Feed) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// TotalPages is ceil(len(posts) / page size); an empty feed has one page.
func (f *Feed) TotalPages() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return totalPages(len(f.posts), f.pageSize)
}

// SetPage stores the requested page as given. Keeping the value inside
// [1, TotalPages] is the caller's responsibility; the façade does not clamp.
func (f *Feed) SetPage(page int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.page = page
}

// PagePosts returns the slice of the current page. A page outside the
// valid range yields an empty slice.
func (f *Feed) PagePosts() []models.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	return pageSlice(f.posts, f.page, f.pageSize)
}

// Creator looks up a creator extracted from the feed payload.
func (f *Feed) Creator(id string) (models.Creator, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.creators[id]
	return c, ok
}

// IsLiked reports the caller's liked-membership for a post.
func (f *Feed) IsLiked(postID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.liked[postID]
}

// HandleLike toggles the caller's like on a post: the count and membership
// flip immediately, the server's answer wins on success, and the exact
// prior state comes back on failure. Anonymous callers get ErrAuthRequired
// without any network traffic.
func (f *Feed) HandleLike(ctx context.Context, postID string) error {
	if !f.session.IsAuthenticated() {
		return ErrAuthRequired
	}

	return optimistic.Do(ctx, f.likes, postID, optimistic.Mutation[models.LikeState]{
		Current: func() models.LikeState { return f.likeState(postID) },
		Apply:   func(s models.LikeState) { f.applyLikeState(postID, s) },
		Speculate: func(prev models.LikeState) models.LikeState {
			return speculateLike(prev)
		},
		Commit: func(ctx context.Context) (models.LikeState, error) {
			res, err := f.api.ToggleLike(ctx, postID)
			if err != nil {
				return models.LikeState{}, err
			}
			return models.LikeState{Likes: res.Likes, Liked: res.IsLiked}, nil
		},
		Reconcile: func(server models.LikeState) models.LikeState { return server },
	})
}

func (f *Feed) likeState(postID string) models.LikeState {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := models.LikeState{Liked: f.liked[postID]}
	for i := range f.posts {
		if f.posts[i].ID == postID {
			state.Likes = f.posts[i].Likes
			break
		}
	}
	return state
}

func (f *Feed) applyLikeState(postID string, s models.LikeState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.posts {
		if f.posts[i].ID == postID {
			f.posts[i].Likes = s.Likes
			break
		}
	}
	if s.Liked {
		f.liked[postID] = true
	} else {
		delete(f.liked, postID)
	}
}

// Close invalidates any fetch still in flight.
func (f *Feed) Close() {
	f.guard.Close()
}

// speculateLike flips liked-membership and moves the count by one, clamped
// at zero on the way down.
func speculateLike(prev models.LikeState) models.LikeState {
	if prev.Liked {
		return models.LikeState{Likes: max(0, prev.Likes-1), Liked: false}
	}
	return models.LikeState{Likes: prev.Likes + 1, Liked: true}
}

// totalPages is ceil(n / size), with a floor of one page.
func totalPages(n, size int) int {
	if n <= 0 {
		return 1
	}
	return (n + size - 1) / size
}

// pageSlice exposes items[(page-1)*size : page*size). Pages outside the
// valid range yield an empty slice.
func pageSlice[T any](items []T, page, size int) []T {
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
