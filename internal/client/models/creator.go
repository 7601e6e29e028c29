package models

// Creator is a read-only projection of a creator profile as served by the
// platform. SubscriberCount and PostCount may be absent on some endpoints
// and default to zero.
type Creator struct {
	ID                string  `json:"id"`
	Username          string  `json:"username"`
	DisplayName       string  `json:"displayName"`
	Avatar            string  `json:"avatar"`
	CoverImage        string  `json:"coverImage"`
	Bio               string  `json:"bio"`
	SubscriptionPrice float64 `json:"subscriptionPrice"`
	IsPremium         bool    `json:"isPremium"`
	SubscriberCount   int     `json:"subscriberCount"`
	PostCount         int     `json:"postCount"`
}
