package viewmodels

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onlyventilateur/ovcli/internal/client/api"
	"github.com/onlyventilateur/ovcli/internal/client/models"
	"github.com/onlyventilateur/ovcli/internal/client/optimistic"
)

func creatorDetail(id string, subscriberCount int, posts ...models.Post) *api.CreatorDetail {
	return &api.CreatorDetail{
		Creator: models.Creator{
			ID: id, Username: "@" + id, DisplayName: "Creator " + id,
			SubscriberCount: subscriberCount, PostCount: len(posts),
		},
		Posts: posts,
	}
}

func TestCreatorLoad_PopulatesProfileAndPosts(t *testing.T) {
	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		return creatorDetail(id, 12, models.Post{ID: "p1", CreatorID: id, Likes: 3, Tags: []string{}}), nil
	}

	v := NewCreatorProfile(fake, anonymousSession(t), testLog())
	require.NoError(t, v.Load(context.Background(), "c1"))

	creator, ok := v.Creator()
	require.True(t, ok)
	assert.Equal(t, "c1", creator.ID)
	assert.Equal(t, 12, creator.SubscriberCount)
	require.Len(t, v.Posts(), 1)
	assert.False(t, v.IsSubscribed())
}

func TestCreatorLoad_NotFoundReturned(t *testing.T) {
	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		return nil, fmt.Errorf("creator: %w", api.ErrNotFound)
	}

	v := NewCreatorProfile(fake, anonymousSession(t), testLog())
	require.ErrorIs(t, v.Load(context.Background(), "ghost"), api.ErrNotFound)
}

func TestCreatorLoad_SubscriptionCheckBestEffort(t *testing.T) {
	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		return creatorDetail(id, 1), nil
	}
	fake.SubscribedCreatorsFn = func(ctx context.Context) ([]models.Creator, error) {
		return nil, fmt.Errorf("subs: %w", api.ErrUnavailable)
	}

	v := NewCreatorProfile(fake, authenticatedSession(t), testLog())
	require.NoError(t, v.Load(context.Background(), "c1"))
	assert.False(t, v.IsSubscribed())
}

func TestCreatorLoad_DetectsExistingSubscription(t *testing.T) {
	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		return creatorDetail(id, 1), nil
	}
	fake.SubscribedCreatorsFn = func(ctx context.Context) ([]models.Creator, error) {
		return []models.Creator{{ID: "c1"}}, nil
	}

	v := NewCreatorProfile(fake, authenticatedSession(t), testLog())
	require.NoError(t, v.Load(context.Background(), "c1"))
	assert.True(t, v.IsSubscribed())
}

func TestCreatorLoad_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	slowStarted := make(chan struct{})

	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		if id == "slow" {
			close(slowStarted)
			<-release
		}
		return creatorDetail(id, 1), nil
	}

	v := NewCreatorProfile(fake, anonymousSession(t), testLog())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = v.Load(context.Background(), "slow")
	}()

	<-slowStarted
	require.NoError(t, v.Load(context.Background(), "fresh"))

	close(release)
	wg.Wait()

	creator, ok := v.Creator()
	require.True(t, ok)
	assert.Equal(t, "fresh", creator.ID, "stale response must not overwrite the newer profile")
}

func TestCreatorLoad_CloseDiscardsLateResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		close(started)
		<-release
		return creatorDetail(id, 1), nil
	}

	v := NewCreatorProfile(fake, anonymousSession(t), testLog())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = v.Load(context.Background(), "c1")
	}()

	<-started
	v.Close()
	close(release)
	wg.Wait()

	_, ok := v.Creator()
	assert.False(t, ok)
}

func TestHandleSubscribe_Anonymous_NoNetworkCall(t *testing.T) {
	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		return creatorDetail(id, 5), nil
	}

	v := NewCreatorProfile(fake, anonymousSession(t), testLog())
	require.NoError(t, v.Load(context.Background(), "c1"))

	require.ErrorIs(t, v.HandleSubscribe(context.Background()), ErrAuthRequired)
	assert.Zero(t, fake.callCount("Subscribe"))
	assert.Zero(t, fake.callCount("Unsubscribe"))
}

func TestHandleSubscribe_TogglesSpeculatively(t *testing.T) {
	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		return creatorDetail(id, 5), nil
	}

	v := NewCreatorProfile(fake, authenticatedSession(t), testLog())
	require.NoError(t, v.Load(context.Background(), "c1"))

	// subscribe: flag up, count up, speculative value stands
	require.NoError(t, v.HandleSubscribe(context.Background()))
	assert.True(t, v.IsSubscribed())
	creator, _ := v.Creator()
	assert.Equal(t, 6, creator.SubscriberCount)
	assert.Equal(t, 1, fake.callCount("Subscribe"))

	// unsubscribe: flag down, count back
	require.NoError(t, v.HandleSubscribe(context.Background()))
	assert.False(t, v.IsSubscribed())
	creator, _ = v.Creator()
	assert.Equal(t, 5, creator.SubscriberCount)
	assert.Equal(t, 1, fake.callCount("Unsubscribe"))
}

func TestHandleSubscribe_FailureRestoresExactPriorState(t *testing.T) {
	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		return creatorDetail(id, 5), nil
	}
	fake.SubscribeFn = func(ctx context.Context, creatorID string) error {
		return fmt.Errorf("subscribe: %w", api.ErrUnavailable)
	}

	v := NewCreatorProfile(fake, authenticatedSession(t), testLog())
	require.NoError(t, v.Load(context.Background(), "c1"))

	err := v.HandleSubscribe(context.Background())
	require.Error(t, err)
	assert.False(t, v.IsSubscribed())
	creator, _ := v.Creator()
	assert.Equal(t, 5, creator.SubscriberCount)
}

func TestHandleSubscribe_UnsubscribeFloorsCountAtZero(t *testing.T) {
	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		return creatorDetail(id, 0), nil
	}
	fake.SubscribedCreatorsFn = func(ctx context.Context) ([]models.Creator, error) {
		return []models.Creator{{ID: "c1"}}, nil
	}

	v := NewCreatorProfile(fake, authenticatedSession(t), testLog())
	require.NoError(t, v.Load(context.Background(), "c1"))
	require.True(t, v.IsSubscribed())

	require.NoError(t, v.HandleSubscribe(context.Background()))
	creator, _ := v.Creator()
	assert.Equal(t, 0, creator.SubscriberCount)
}

func TestHandleSubscribe_OverlappingToggleRejected(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	fake := newFakeAPI()
	fake.CreatorByIDFn = func(ctx context.Context, id string) (*api.CreatorDetail, error) {
		return creatorDetail(id, 5), nil
	}
	fake.SubscribeFn = func(ctx context.Context, creatorID string) error {
		close(started)
		<-release
		return nil
	}

	v := NewCreatorProfile(fake, authenticatedSession(t), testLog())
	require.NoError(t, v.Load(context.Background(), "c1"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = v.HandleSubscribe(context.Background())
	}()

	<-started
	err := v.HandleSubscribe(context.Background())
	assert.ErrorIs(t, err, optimistic.ErrPending)

	close(release)
	wg.Wait()
	assert.True(t, v.IsSubscribed())
}
