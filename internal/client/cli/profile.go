package cli

import (
	"context"
	"os"
)

// EditProfile runs the interactive profile edit: each field shows its
// current value and keeps it on empty input, then the form is saved. A
// failed save leaves the form editable and shows the server's message.
func (a *App) EditProfile(ctx context.Context) error {
	a.profile.Edit()
	if !a.profile.IsEditing() {
		printlnFn("Please login first.")
		return nil
	}

	form := a.profile.Form()

	username, err := getOptionalText(a.reader, "Username", form.Username, os.Stdout)
	if err != nil {
		return err
	}
	bio, err := getOptionalText(a.reader, "Bio", form.Bio, os.Stdout)
	if err != nil {
		return err
	}
	avatar, err := getOptionalText(a.reader, "Avatar URL", form.Avatar, os.Stdout)
	if err != nil {
		return err
	}

	a.profile.SetUsername(username)
	a.profile.SetBio(bio)
	a.profile.SetAvatar(avatar)

	if err := a.profile.Save(ctx); err != nil {
		printlnFn("Could not save:", a.profile.ErrorMessage())
		return err
	}

	printlnFn("Profile saved.")
	return nil
}
