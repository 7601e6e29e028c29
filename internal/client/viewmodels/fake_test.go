package viewmodels

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/onlyventilateur/ovcli/internal/client/api"
	"github.com/onlyventilateur/ovcli/internal/client/models"
	"github.com/onlyventilateur/ovcli/internal/client/session"
	"github.com/onlyventilateur/ovcli/internal/logging"
)

// fakeAPI implements api.Client for view-model tests. Each method
// delegates to an optional func field; unset methods fail the test if hit.
type fakeAPI struct {
	mu    sync.Mutex
	calls map[string]int

	LoginFn              func(ctx context.Context, email, password string) (*api.AuthResult, error)
	SignupFn             func(ctx context.Context, email, username, password string) (*api.AuthResult, error)
	UpdateProfileFn      func(ctx context.Context, patch models.ProfilePatch) (*models.User, error)
	CreatorsFn           func(ctx context.Context) ([]models.Creator, error)
	CreatorByIDFn        func(ctx context.Context, id string) (*api.CreatorDetail, error)
	FeedFn               func(ctx context.Context) ([]api.FeedPost, error)
	PostByIDFn           func(ctx context.Context, id string) (*api.PostDetail, error)
	ToggleLikeFn         func(ctx context.Context, postID string) (*api.LikeResult, error)
	LikedPostIDsFn       func(ctx context.Context) ([]string, error)
	SubscribedCreatorsFn func(ctx context.Context) ([]models.Creator, error)
	SubscribeFn          func(ctx context.Context, creatorID string) error
	UnsubscribeFn        func(ctx context.Context, creatorID string) error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{calls: make(map[string]int)}
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

var errFakeUnset = errors.New("fake method not configured")

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.AuthResult, error) {
	f.record("Login")
	if f.LoginFn == nil {
		return nil, errFakeUnset
	}
	return f.LoginFn(ctx, email, password)
}

func (f *fakeAPI) Signup(ctx context.Context, email, username, password string) (*api.AuthResult, error) {
	f.record("Signup")
	if f.SignupFn == nil {
		return nil, errFakeUnset
	}
	return f.SignupFn(ctx, email, username, password)
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.User, error) {
	f.record("UpdateProfile")
	if f.UpdateProfileFn == nil {
		return nil, errFakeUnset
	}
	return f.UpdateProfileFn(ctx, patch)
}

func (f *fakeAPI) Creators(ctx context.Context) ([]models.Creator, error) {
	f.record("Creators")
	if f.CreatorsFn == nil {
		return nil, errFakeUnset
	}
	return f.CreatorsFn(ctx)
}

func (f *fakeAPI) CreatorByID(ctx context.Context, id string) (*api.CreatorDetail, error) {
	f.record("CreatorByID")
	if f.CreatorByIDFn == nil {
		return nil, errFakeUnset
	}
	return f.CreatorByIDFn(ctx, id)
}

func (f *fakeAPI) Feed(ctx context.Context) ([]api.FeedPost, error) {
	f.record("Feed")
	if f.FeedFn == nil {
		return nil, errFakeUnset
	}
	return f.FeedFn(ctx)
}

func (f *fakeAPI) PostByID(ctx context.Context, id string) (*api.PostDetail, error) {
	f.record("PostByID")
	if f.PostByIDFn == nil {
		return nil, errFakeUnset
	}
	return f.PostByIDFn(ctx, id)
}

func (f *fakeAPI) ToggleLike(ctx context.Context, postID string) (*api.LikeResult, error) {
	f.record("ToggleLike")
	if f.ToggleLikeFn == nil {
		return nil, errFakeUnset
	}
	return f.ToggleLikeFn(ctx, postID)
}

func (f *fakeAPI) LikedPostIDs(ctx context.Context) ([]string, error) {
	f.record("LikedPostIDs")
	if f.LikedPostIDsFn == nil {
		return []string{}, nil
	}
	return f.LikedPostIDsFn(ctx)
}

func (f *fakeAPI) SubscribedCreators(ctx context.Context) ([]models.Creator, error) {
	f.record("SubscribedCreators")
	if f.SubscribedCreatorsFn == nil {
		return []models.Creator{}, nil
	}
	return f.SubscribedCreatorsFn(ctx)
}

func (f *fakeAPI) Subscribe(ctx context.Context, creatorID string) error {
	f.record("Subscribe")
	if f.SubscribeFn == nil {
		return nil
	}
	return f.SubscribeFn(ctx, creatorID)
}

func (f *fakeAPI) Unsubscribe(ctx context.Context, creatorID string) error {
	f.record("Unsubscribe")
	if f.UnsubscribeFn == nil {
		return nil
	}
	return f.UnsubscribeFn(ctx, creatorID)
}

func (f *fakeAPI) Close() error { return nil }

// ---- session helpers ----

func anonymousSession(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(t.TempDir(), logging.NewDiscardLogger())
}

func authenticatedSession(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(t.TempDir(), logging.NewDiscardLogger())
	err := store.Establish(models.User{
		ID: "u1", Email: "fan@example.com", Username: "fan", SubscribedTo: []string{},
	}, "tok-123")
	if err != nil {
		t.Fatalf("establish session: %v", err)
	}
	return store
}

func testLog() logging.Logger { return logging.NewDiscardLogger() }
