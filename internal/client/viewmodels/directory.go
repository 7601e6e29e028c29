package viewmodels

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/onlyventilateur/ovcli/internal/client/api"
	"github.com/onlyventilateur/ovcli/internal/client/models"
	"github.com/onlyventilateur/ovcli/internal/logging"
)

// Directory is the creator directory: the full fetched list plus a
// client-side, case-insensitive substring filter over display name and
// handle. The list is small, so the filter recomputes against the
// in-memory copy on every query change with no server round trip.
type Directory struct {
	mu  sync.Mutex
	api api.Client
	log logging.Logger

	creators []models.Creator
	query    string
}

func NewDirectory(client api.Client, log logging.Logger) *Directory {
	return &Directory{api: client, log: log}
}

// Load fetches all creators. The list is primary content for this screen,
// so a failure is returned for display.
func (d *Directory) Load(ctx context.Context) error {
	creators, err := d.api.Creators(ctx)
	if err != nil {
		return fmt.Errorf("load creators: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.creators = creators
	return nil
}

// SetQuery updates the filter text.
func (d *Directory) SetQuery(q string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.query = q
}

func (d *Directory) Query() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query
}

// Creators returns the creators matching the current query, or the whole
// list when the query is empty.
func (d *Directory) Creators() []models.Creator {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.query == "" {
		out := make([]models.Creator, len(d.creators))
		copy(out, d.creators)
		return out
	}

	needle := strings.ToLower(d.query)
	out := make([]models.Creator, 0, len(d.creators))
	for _, c := range d.creators {
		if strings.Contains(strings.ToLower(c.DisplayName), needle) ||
			strings.Contains(strings.ToLower(c.Username), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Total is the size of the unfiltered list.
func (d *Directory) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.creators)
}
