package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/onlyventilateur/ovcli/internal/client/api"
	"github.com/onlyventilateur/ovcli/internal/client/config"
	"github.com/onlyventilateur/ovcli/internal/client/session"
	"github.com/onlyventilateur/ovcli/internal/client/viewmodels"
	"github.com/onlyventilateur/ovcli/internal/filex"
	"github.com/onlyventilateur/ovcli/internal/logging"
)

// App owns the wired client: one session store, one API client, and one
// view-model per screen. The REPL dispatches user commands to its methods.
type App struct {
	config  *config.Config
	log     logging.Logger
	session *session.Store
	api     api.Client

	auth      *viewmodels.Auth
	feed      *viewmodels.Feed
	directory *viewmodels.Directory
	creator   *viewmodels.CreatorProfile
	post      *viewmodels.PostDetail
	profile   *viewmodels.UserProfile
	subs      *viewmodels.Subscriptions

	reader *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	stateDir, err := filex.EnsureDir(c.StateDir)
	if err != nil {
		return nil, fmt.Errorf("prepare state dir: %w", err)
	}

	store := session.NewStore(stateDir, log)
	client := api.NewHTTPClient(c.APIBaseURL, store, c.HTTPTimeout, log)

	feed := viewmodels.NewFeed(client, store, log)
	feed.SetPageSize(c.FeedPageSize)

	return &App{
		config:    c,
		log:       log,
		session:   store,
		api:       client,
		auth:      viewmodels.NewAuth(client, store, log),
		feed:      feed,
		directory: viewmodels.NewDirectory(client, log),
		creator:   viewmodels.NewCreatorProfile(client, store, log),
		post:      viewmodels.NewPostDetail(client, store, log),
		profile:   viewmodels.NewUserProfile(client, store, log),
		subs:      viewmodels.NewSubscriptions(client, store, log),
		reader:    bufio.NewReader(os.Stdin),
	}, nil
}

// Run restores any persisted session and blocks in the REPL until the
// user exits.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	if user, ok := a.auth.Restore(); ok {
		printlnFn(fmt.Sprintf("Welcome back, %s!", user.Username))
	}

	printlnFn("OnlyVentilateur CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) close() {
	a.feed.Close()
	a.creator.Close()
	a.post.Close()
	if err := a.api.Close(); err != nil {
		a.log.Warn(context.Background(), "api client close failed", "err", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if user, ok := a.session.User(); ok {
		return fmt.Sprintf("(%s)", user.Username)
	}
	return ""
}
