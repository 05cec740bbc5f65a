package models

import "time"

// Subject is a course a student can log study time against.
type Subject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Credits   int       `gorm:"not null;default:0" json:"credits"`
	MajorArea string    `gorm:"size:128;index" json:"major_area"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
