package api

import (
	"bytes"
	"strconv"
	"time"

	"github.com/onlyventilateur/ovcli/internal/client/models"
)

// flexNumber decodes a JSON number that the backend sometimes serializes
// as a string (subscription prices and post prices come back as decimals
// in quotes). null and absent both decode to zero.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*n = 0
		return nil
	}
	if b[0] == '"' && len(b) >= 2 {
		b = b[1 : len(b)-1]
	}
	if len(b) == 0 {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*n = flexNumber(f)
	return nil
}

type wireUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
}

func (w wireUser) toModel() models.User {
	return models.User{
		ID:           w.ID,
		Email:        w.Email,
		Username:     w.Username,
		Avatar:       w.Avatar,
		Bio:          w.Bio,
		SubscribedTo: []string{},
	}
}

type wireCreator struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	DisplayName       string     `json:"displayName"`
	Avatar            string     `json:"avatar"`
	CoverImage        string     `json:"coverImage"`
	Bio               string     `json:"bio"`
	SubscriptionPrice flexNumber `json:"subscriptionPrice"`
	IsPremium         bool       `json:"isPremium"`
	SubscriberCount   int        `json:"subscriberCount"`
	PostCount         int        `json:"postCount"`
}

func (w wireCreator) toModel() models.Creator {
	return models.Creator{
		ID:                w.ID,
		Username:          w.Username,
		DisplayName:       w.DisplayName,
		Avatar:            w.Avatar,
		CoverImage:        w.CoverImage,
		Bio:               w.Bio,
		SubscriptionPrice: float64(w.SubscriptionPrice),
		IsPremium:         w.IsPremium,
		SubscriberCount:   w.SubscriberCount,
		PostCount:         w.PostCount,
	}
}

type wirePost struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	IsLocked    bool         `json:"isLocked"`
	Price       flexNumber   `json:"price"`
	Likes       int          `json:"likes"`
	CreatedAt   string       `json:"createdAt"`
	Tags        []string     `json:"tags"`
	Creator     *wireCreator `json:"creator"`
}

// toModel normalizes a post payload. The owning creator id is taken from
// the nested creator when present, otherwise from fallbackCreatorID.
// A malformed timestamp degrades to the zero time instead of failing the
// whole fetch.
func (w wirePost) toModel(fallbackCreatorID string) models.Post {
	creatorID := fallbackCreatorID
	if w.Creator != nil && w.Creator.ID != "" {
		creatorID = w.Creator.ID
	}
	tags := w.Tags
	if tags == nil {
		tags = []string{}
	}
	createdAt, err := time.Parse(time.RFC3339, w.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	return models.Post{
		ID:          w.ID,
		CreatorID:   creatorID,
		Title:       w.Title,
		Description: w.Description,
		Image:       w.Image,
		IsLocked:    w.IsLocked,
		Price:       float64(w.Price),
		Likes:       w.Likes,
		CreatedAt:   createdAt,
		Tags:        tags,
	}
}

type wireCreatorDetail struct {
	wireCreator
	Posts []wirePost `json:"posts"`
}

type wireSubscription struct {
	Creator *wireCreator `json:"creator"`
}

type wireAuthResponse struct {
	AccessToken string   `json:"access_token"`
	User        wireUser `json:"user"`
}
