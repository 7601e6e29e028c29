package viewmodels

import (
	"context"
	"sync"

	"github.com/onlyventilateur/ovcli/internal/client/api"
	"github.com/onlyventilateur/ovcli/internal/client/models"
	"github.com/onlyventilateur/ovcli/internal/client/session"
	"github.com/onlyventilateur/ovcli/internal/logging"
)

// Subscriptions is the "my subscriptions" screen: the creators the caller
// is subscribed to. A failed fetch degrades to an empty list rather than
// blocking the screen.
type Subscriptions struct {
	mu      sync.Mutex
	api     api.Client
	session *session.Store
	log     logging.Logger

	creators []models.Creator
}

func NewSubscriptions(client api.Client, store *session.Store, log logging.Logger) *Subscriptions {
	return &Subscriptions{api: client, session: store, log: log}
}

// Load fetches the subscribed creators. Anonymous callers get
// ErrAuthRequired without network traffic.
func (v *Subscriptions) Load(ctx context.Context) error {
	if !v.session.IsAuthenticated() {
		return ErrAuthRequired
	}

	creators, err := v.api.SubscribedCreators(ctx)
	if err != nil {
		v.log.Debug(ctx, "subscriptions unavailable, degrading to empty", "err", err)
		creators = []models.Creator{}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.creators = creators
	return nil
}

func (v *Subscriptions) Creators() []models.Creator {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]models.Creator, len(v.creators))
	copy(out, v.creators)
	return out
}

func (v *Subscriptions) Count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.creators)
}
