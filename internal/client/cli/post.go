package cli

import (
	"context"
	"fmt"
	"strings"
)

// OpenPost loads a single post with its creator and like state.
func (a *App) OpenPost(ctx context.Context, args []string) error {
	if err := a.post.Load(ctx, args[0]); err != nil {
		reportErr(err)
		return err
	}
	a.renderPost()
	return nil
}

func (a *App) renderPost() {
	post, ok := a.post.Post()
	if !ok {
		return
	}

	creator := a.post.Creator()
	printlnFn(renderPostLine(post, creator.DisplayName, a.post.IsLiked()))
	if a.post.Locked() {
		printlnFn(fmt.Sprintf("Premium content (%.2f). Login and subscribe to view.", post.Price))
		return
	}
	if post.Description != "" {
		printlnFn(post.Description)
	}
	if len(post.Tags) > 0 {
		printlnFn("Tags:", strings.Join(post.Tags, ", "))
	}
}
