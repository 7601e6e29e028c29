package viewmodels

import (
	"context"
	"sync"

	"github.com/onlyventilateur/ovcli/internal/client/api"
	"github.com/onlyventilateur/ovcli/internal/client/models"
	"github.com/onlyventilateur/ovcli/internal/client/optimistic"
	"github.com/onlyventilateur/ovcli/internal/client/session"
	"github.com/onlyventilateur/ovcli/internal/logging"
)

// ProfileForm holds the editable identity fields.
type ProfileForm struct {
	Username string
	Bio      string
	Avatar   string
}

// UserProfile is the profile screen: an edit-form lifecycle around the
// session identity. Unlike the low-stakes toggles, a failed save surfaces
// the server's message and the form stays in edit mode.
type UserProfile struct {
	mu      sync.Mutex
	api     api.Client
	session *session.Store
	ctrl    *optimistic.Controller
	log     logging.Logger

	form    ProfileForm
	editing bool
	saving  bool
	errMsg  string
}

func NewUserProfile(client api.Client, store *session.Store, log logging.Logger) *UserProfile {
	return &UserProfile{
		api:     client,
		session: store,
		ctrl:    optimistic.NewController(),
		log:     log,
	}
}

// Edit seeds the form from the current identity and enters edit mode.
func (v *UserProfile) Edit() {
	user, ok := v.session.User()

	v.mu.Lock()
	defer v.mu.Unlock()
	if !ok {
		return
	}
	v.form = ProfileForm{Username: user.Username, Bio: user.Bio, Avatar: user.Avatar}
	v.editing = true
	v.errMsg = ""
}

// Cancel leaves edit mode, dropping any unsaved changes.
func (v *UserProfile) Cancel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editing = false
	v.errMsg = ""
}

func (v *UserProfile) SetUsername(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Username = s
}

func (v *UserProfile) SetBio(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Bio = s
}

func (v *UserProfile) SetAvatar(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.form.Avatar = s
}

// Save submits the form. The form fields are explicit, so nothing is
// speculated: on success the server's returned identity is merged into the
// session and edit mode ends; on failure the form stays editable and the
// server's message is exposed via ErrorMessage.
func (v *UserProfile) Save(ctx context.Context) error {
	if !v.session.IsAuthenticated() {
		return ErrAuthRequired
	}

	v.mu.Lock()
	form := v.form
	v.saving = true
	v.errMsg = ""
	v.mu.Unlock()

	err := optimistic.Do(ctx, v.ctrl, "profile", optimistic.Mutation[models.ProfilePatch]{
		Current: func() models.ProfilePatch {
			user, ok := v.session.User()
			if !ok {
				return models.ProfilePatch{}
			}
			return models.ProfilePatch{Username: &user.Username, Bio: &user.Bio, Avatar: &user.Avatar}
		},
		Apply: func(p models.ProfilePatch) { v.session.Patch(p) },
		Commit: func(ctx context.Context) (models.ProfilePatch, error) {
			updated, err := v.api.UpdateProfile(ctx, models.ProfilePatch{
				Username: &form.Username,
				Bio:      &form.Bio,
				Avatar:   &form.Avatar,
			})
			if err != nil {
				return models.ProfilePatch{}, err
			}
			return models.ProfilePatch{
				Username: &updated.Username,
				Bio:      &updated.Bio,
				Avatar:   &updated.Avatar,
			}, nil
		},
		Reconcile: func(server models.ProfilePatch) models.ProfilePatch { return server },
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	v.saving = false
	if err != nil {
		v.errMsg = userMessage(err, "could not save the profile")
		return err
	}
	v.editing = false
	return nil
}

func (v *UserProfile) User() (*models.User, bool) { return v.session.User() }

func (v *UserProfile) Form() ProfileForm {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.form
}

func (v *UserProfile) IsEditing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.editing
}

func (v *UserProfile) IsSaving() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.saving
}

// ErrorMessage is the user-facing message of the last failed save, empty
// when the last save succeeded or none happened yet.
func (v *UserProfile) ErrorMessage() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errMsg
}
