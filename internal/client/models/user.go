// Package models defines the normalized domain entities the client works
// with. Wire payloads are decoded and coerced by the api package; everything
// downstream of it only ever sees these types, with optional fields already
// defaulted so callers never have to nil-check.
package models

// User is the identity of the authenticated account. It is owned by the
// session store: only login/signup establish it, only a profile update
// patches it, and logout destroys it.
type User struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Username     string   `json:"username"`
	Avatar       string   `json:"avatar"`
	Bio          string   `json:"bio"`
	SubscribedTo []string `json:"subscribedTo"`
}

// ProfilePatch is a partial identity update. Nil fields are left untouched.
type ProfilePatch struct {
	Username *string
	Bio      *string
	Avatar   *string
}

// Apply merges the patch into u, field by field.
func (p ProfilePatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
}
