package domain

// SendMessageRequest POST /messages body
type SendMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	Media      string `json:"media"`
}

// UpdateMessageRequest PUT /messages/:id body
type UpdateMessageRequest struct {
	Content string `json:"content"`
}

// ReactRequest POST /messages/:id/react body
type ReactRequest struct {
	Emoji string `json:"emoji"`
}

// MediaResponse POST /messages/media response
type MediaResponse struct {
	Media  string `json:"media"`
	Object string `json:"object"`
}
