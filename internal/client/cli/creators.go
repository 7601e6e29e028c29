package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/onlyventilateur/ovcli/internal/client/models"
)

// ListCreators loads the directory and renders the full list.
func (a *App) ListCreators(ctx context.Context) error {
	if err := a.directory.Load(ctx); err != nil {
		reportErr(err)
		return err
	}
	a.directory.SetQuery("")
	a.renderCreatorList(a.directory.Creators())
	return nil
}

// FindCreators filters the directory by a case-insensitive substring over
// display name and handle. The directory is loaded on demand.
func (a *App) FindCreators(ctx context.Context, args []string) error {
	if a.directory.Total() == 0 {
		if err := a.directory.Load(ctx); err != nil {
			reportErr(err)
			return err
		}
	}

	a.directory.SetQuery(strings.Join(args, " "))
	matches := a.directory.Creators()
	if len(matches) == 0 {
		printlnFn("No creators match.")
		return nil
	}
	a.renderCreatorList(matches)
	return nil
}

// OpenCreator loads one creator's profile with their posts and
// subscription state.
func (a *App) OpenCreator(ctx context.Context, args []string) error {
	if err := a.creator.Load(ctx, args[0]); err != nil {
		reportErr(err)
		return err
	}
	a.renderCreatorProfile()
	return nil
}

// ToggleSubscription flips the caller's subscription to the creator opened
// with OpenCreator.
func (a *App) ToggleSubscription(ctx context.Context) error {
	if _, ok := a.creator.Creator(); !ok {
		printlnFn("Open a creator first: creator <id>")
		return nil
	}
	if err := a.creator.HandleSubscribe(ctx); err != nil {
		reportErr(err)
		return err
	}
	a.renderCreatorProfile()
	return nil
}

func (a *App) renderCreatorList(creators []models.Creator) {
	for _, c := range creators {
		printlnFn(fmt.Sprintf("%-12s %s (%s) | %d subscribers, %d posts",
			c.ID, c.DisplayName, c.Username, c.SubscriberCount, c.PostCount))
	}
	printlnFn(fmt.Sprintf("%d creator(s)", len(creators)))
}

func (a *App) renderCreatorProfile() {
	creator, ok := a.creator.Creator()
	if !ok {
		return
	}

	sub := ""
	if a.creator.IsSubscribed() {
		sub = " [subscribed]"
	}
	printlnFn(fmt.Sprintf("%s (%s)%s", creator.DisplayName, creator.Username, sub))
	if creator.Bio != "" {
		printlnFn(creator.Bio)
	}
	printlnFn(fmt.Sprintf("%d subscribers | %.2f/month | %d posts",
		creator.SubscriberCount, creator.SubscriptionPrice, creator.PostCount))

	for _, p := range a.creator.Posts() {
		printlnFn(renderPostLine(p, creator.DisplayName, a.creator.IsLiked(p.ID)))
	}
}
