package models

import "time"

// Role values stored in tokens and message rows.
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
)

// Student represents a learner who logs study sessions against subjects.
type Student struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Major        string    `gorm:"size:128" json:"major"`
	Semester     int       `gorm:"not null;default:1" json:"semester"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Mentor represents a tutor who sets goals and gives feedback to students.
type Mentor struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash  string    `gorm:"size:255;not null" json:"-"`
	ExpertiseArea string    `gorm:"size:128" json:"expertise_area"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
