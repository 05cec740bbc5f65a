package models

import "time"

// StudyLog records a single study session. Rows are append-only: the
// application never updates or deletes them, and every progress figure is
// derived from their sum.
type StudyLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StudentID     uint      `gorm:"not null;index:idx_study_logs_pair" json:"student_id"`
	SubjectID     uint      `gorm:"not null;index:idx_study_logs_pair" json:"subject_id"`
	MentorID      uint      `gorm:"not null;index" json:"mentor_id"`
	StudyDate     time.Time `gorm:"not null" json:"study_date"`
	DurationHours float64   `gorm:"not null" json:"duration_hours"`
	CreatedAt     time.Time `json:"created_at"`

	Student Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Subject Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
	Mentor  Mentor  `gorm:"foreignKey:MentorID" json:"mentor,omitempty"`
}
