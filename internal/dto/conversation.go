package dto

// CreateConversationRequest names a new conversation.
type CreateConversationRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}
