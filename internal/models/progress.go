package models

import "time"

// ProgressRecord is the materialized completion percentage for one
// (student, subject) pair. It is upserted on every recompute, never appended.
type ProgressRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uint      `gorm:"not null;uniqueIndex:idx_progress_pair" json:"student_id"`
	SubjectID  uint      `gorm:"not null;uniqueIndex:idx_progress_pair" json:"subject_id"`
	Percentage float64   `gorm:"not null;default:0" json:"percentage"`
	UpdatedAt  time.Time `json:"updated_at"`

	Subject Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}
