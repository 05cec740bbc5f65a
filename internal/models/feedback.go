package models

import "time"

// Feedback is a free-form comment a mentor leaves for a student.
type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;index" json:"student_id"`
	MentorID  uint      `gorm:"not null;index" json:"mentor_id"`
	Comments  string    `gorm:"type:text;not null" json:"comments"`
	CreatedAt time.Time `json:"created_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Mentor  Mentor  `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
}
