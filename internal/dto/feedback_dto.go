package dto

import (
	"time"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// FeedbackCreateRequest carries a mentor comment for a student.
type FeedbackCreateRequest struct {
	StudentID uint   `json:"student_id" validate:"required,min=1"`
	Comments  string `json:"comments" validate:"required,min=1,max=4000"`
}

// FeedbackResponse is the serialized representation of a feedback entry.
type FeedbackResponse struct {
	ID          uint      `json:"id"`
	StudentID   uint      `json:"student_id"`
	StudentName string    `json:"student_name,omitempty"`
	MentorID    uint      `json:"mentor_id"`
	MentorName  string    `json:"mentor_name,omitempty"`
	Comments    string    `json:"comments"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewFeedbackResponse converts a model into a DTO.
func NewFeedbackResponse(feedback models.Feedback) FeedbackResponse {
	return FeedbackResponse{
		ID:          feedback.ID,
		StudentID:   feedback.StudentID,
		StudentName: feedback.Student.Name,
		MentorID:    feedback.MentorID,
		MentorName:  feedback.Mentor.Name,
		Comments:    feedback.Comments,
		CreatedAt:   feedback.CreatedAt,
	}
}

// NewFeedbackResponseSlice converts a slice of models into DTOs.
func NewFeedbackResponseSlice(entries []models.Feedback) []FeedbackResponse {
	out := make([]FeedbackResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, NewFeedbackResponse(entry))
	}
	return out
}
