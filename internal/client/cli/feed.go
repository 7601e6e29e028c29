package cli

import (
	"context"
	"fmt"

	"github.com/onlyventilateur/ovcli/internal/client/models"
)

// ShowFeed loads the feed and renders the first page.
func (a *App) ShowFeed(ctx context.Context) error {
	if err := a.feed.Load(ctx); err != nil {
		reportErr(err)
		return err
	}
	a.renderFeedPage()
	return nil
}

// NextPage advances the feed one page, clamped to the last page. The
// view-model itself does not clamp; the presentation layer does.
func (a *App) NextPage(ctx context.Context) error {
	if page := a.feed.Page(); page < a.feed.TotalPages() {
		a.feed.SetPage(page + 1)
	}
	a.renderFeedPage()
	return nil
}

// PrevPage goes back one page, clamped to the first page.
func (a *App) PrevPage(ctx context.Context) error {
	if page := a.feed.Page(); page > 1 {
		a.feed.SetPage(page - 1)
	}
	a.renderFeedPage()
	return nil
}

// Like toggles the caller's like on a post from the feed.
func (a *App) Like(ctx context.Context, args []string) error {
	postID := args[0]
	if err := a.feed.HandleLike(ctx, postID); err != nil {
		reportErr(err)
		return err
	}
	a.renderFeedPage()
	return nil
}

func (a *App) renderFeedPage() {
	posts := a.feed.PagePosts()
	if len(posts) == 0 {
		printlnFn("The feed is empty.")
		return
	}

	for _, p := range posts {
		printlnFn(renderPostLine(p, a.feedCreatorName(p.CreatorID), a.feed.IsLiked(p.ID)))
	}
	printlnFn(fmt.Sprintf("-- page %d/%d --", a.feed.Page(), a.feed.TotalPages()))
}

func (a *App) feedCreatorName(creatorID string) string {
	if c, ok := a.feed.Creator(creatorID); ok {
		return c.DisplayName
	}
	return creatorID
}

func renderPostLine(p models.Post, creatorName string, liked bool) string {
	mark := " "
	if liked {
		mark = "*"
	}
	lock := ""
	if p.IsLocked {
		lock = " [locked]"
	}
	return fmt.Sprintf("%s %-12s %s | %d likes%s (by %s)", mark, p.ID, p.Title, p.Likes, lock, creatorName)
}
