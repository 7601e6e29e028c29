package cli

import (
	"context"
)

// ShowSubscriptions lists the creators the caller is subscribed to.
func (a *App) ShowSubscriptions(ctx context.Context) error {
	if err := a.subs.Load(ctx); err != nil {
		reportErr(err)
		return err
	}

	creators := a.subs.Creators()
	if len(creators) == 0 {
		printlnFn("No subscriptions yet.")
		return nil
	}
	a.renderCreatorList(creators)
	return nil
}
