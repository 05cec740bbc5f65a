package dto

import (
	"time"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// MessageSendRequest carries one person-to-person message.
type MessageSendRequest struct {
	RecipientID   uint   `json:"recipient_id" validate:"required,min=1"`
	RecipientRole string `json:"recipient_role" validate:"required,oneof=student mentor"`
	Content       string `json:"content" validate:"required,min=1,max=4000"`
}

// MessageResponse is the serialized representation of a message.
type MessageResponse struct {
	ID            uint      `json:"id"`
	SenderID      uint      `json:"sender_id"`
	SenderRole    string    `json:"sender_role"`
	RecipientID   uint      `json:"recipient_id"`
	RecipientRole string    `json:"recipient_role"`
	Content       string    `json:"content"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewMessageResponse converts a model into a DTO.
func NewMessageResponse(message models.Message) MessageResponse {
	return MessageResponse{
		ID:            message.ID,
		SenderID:      message.SenderID,
		SenderRole:    message.SenderRole,
		RecipientID:   message.RecipientID,
		RecipientRole: message.RecipientRole,
		Content:       message.Content,
		IsRead:        message.IsRead,
		CreatedAt:     message.CreatedAt,
	}
}

// NewMessageResponseSlice converts a slice of models into DTOs.
func NewMessageResponseSlice(messages []models.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, NewMessageResponse(message))
	}
	return out
}
