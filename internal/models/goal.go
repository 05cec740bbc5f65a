package models

import "time"

// Goal is a mentor-set target of study hours for a (student, subject) pair.
// IsMet is a one-way latch: recomputation may only flip it false to true.
// Resetting it is an explicit administrative override.
type Goal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;index:idx_goals_pair" json:"student_id"`
	SubjectID   uint      `gorm:"not null;index:idx_goals_pair" json:"subject_id"`
	MentorID    uint      `gorm:"not null;index" json:"mentor_id"`
	TargetHours float64   `gorm:"not null" json:"target_hours"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	IsMet       bool      `gorm:"not null;default:false" json:"is_met"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Subject Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Mentor  Mentor  `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
}
