package dto

import (
	"time"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// GoalCreateRequest lets a mentor set a target for a student.
type GoalCreateRequest struct {
	StudentID   uint      `json:"student_id" validate:"required,min=1"`
	SubjectID   uint      `json:"subject_id" validate:"required,min=1"`
	TargetHours float64   `json:"target_hours" validate:"required,gt=0,lte=1000"`
	DueDate     time.Time `json:"due_date" validate:"required"`
}

// GoalMetToggleRequest overrides the met latch from the system view.
type GoalMetToggleRequest struct {
	IsMet bool `json:"is_met"`
}

// GoalResponse is the serialized representation of a goal.
type GoalResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	SubjectID   uint      `json:"subject_id"`
	SubjectName string    `json:"subject_name,omitempty"`
	MentorID    uint      `json:"mentor_id"`
	MentorName  string    `json:"mentor_name,omitempty"`
	TargetHours float64   `json:"target_hours"`
	DueDate     time.Time `json:"due_date"`
	IsMet       bool      `json:"is_met"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewGoalResponse converts a model into a DTO.
func NewGoalResponse(goal models.Goal) GoalResponse {
	return GoalResponse{
		ID:          goal.ID,
		StudentID:   goal.StudentID,
		StudentName: goal.Student.Name,
		SubjectID:   goal.SubjectID,
		SubjectName: goal.Subject.Name,
		MentorID:    goal.MentorID,
		MentorName:  goal.Mentor.Name,
		TargetHours: goal.TargetHours,
		DueDate:     goal.DueDate,
		IsMet:       goal.IsMet,
		CreatedAt:   goal.CreatedAt,
	}
}

// NewGoalResponseSlice converts a slice of models into DTOs.
func NewGoalResponseSlice(goals []models.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(goals))
	for _, goal := range goals {
		out = append(out, NewGoalResponse(goal))
	}
	return out
}
