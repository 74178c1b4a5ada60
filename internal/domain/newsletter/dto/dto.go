package dto

// SubscribeRequest is the body of POST /api/newsletter/subscribe
type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscribeResponse confirms a subscription
type SubscribeResponse struct {
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// UnsubscribeResponse confirms an unsubscribe
type UnsubscribeResponse struct {
	Unsubscribed bool `json:"unsubscribed"`
}
