package models

import "time"

// Message is one entry in the append-only message log. System-generated goal
// completion messages share this table with person-to-person mail; they are
// authored as the goal's mentor.
type Message struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SenderID      uint      `gorm:"not null;index" json:"sender_id"`
	SenderRole    string    `gorm:"size:32;not null" json:"sender_role"`
	RecipientID   uint      `gorm:"not null;index" json:"recipient_id"`
	RecipientRole string    `gorm:"size:32;not null" json:"recipient_role"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	IsRead        bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}
