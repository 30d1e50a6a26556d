package dto

// UpdateSettingRequest sets one site toggle. Boolean settings accept "true"
// and "false" as values.
type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required,max=500"`
}

// SubscriptionKeys mirrors the keys object of a browser PushSubscription.
type SubscriptionKeys struct {
	P256dh string `json:"p256dh" validate:"required"`
	Auth   string `json:"auth" validate:"required"`
}

// SubscribeRequest registers a browser for Web Push notifications.
type SubscribeRequest struct {
	Endpoint string           `json:"endpoint" validate:"required,url"`
	Keys     SubscriptionKeys `json:"keys" validate:"required"`
}

// BroadcastRequest is the admin payload for sending a push notification to
// every subscriber.
type BroadcastRequest struct {
	Title string `json:"title" validate:"required,max=120"`
	Body  string `json:"body" validate:"required,max=500"`
	URL   string `json:"url" validate:"omitempty,url"`
}
