package models

import "time"

// Post is a read-only projection of a published post. Price is only
// meaningful when IsLocked is set; absent optionals arrive already
// defaulted (zero price, empty tag list).
type Post struct {
	ID          string    `json:"id"`
	CreatorID   string    `json:"creatorId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	IsLocked    bool      `json:"isLocked"`
	Price       float64   `json:"price"`
	Likes       int       `json:"likes"`
	CreatedAt   time.Time `json:"createdAt"`
	Tags        []string  `json:"tags"`
}

// LikeState is the per-post slice of state the like toggle speculates on.
type LikeState struct {
	Likes int
	Liked bool
}

// SubscriptionState is the per-creator slice of state the subscribe and
// unsubscribe toggles speculate on.
type SubscriptionState struct {
	Subscribed      bool
	SubscriberCount int
}
