package dto

import (
	"time"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// ProgressResponse is the serialized completion state for one pair.
type ProgressResponse struct {
	StudentID   uint      `json:"student_id"`
	SubjectID   uint      `json:"subject_id"`
	SubjectName string    `json:"subject_name,omitempty"`
	Percentage  float64   `json:"percentage"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProgressResponse converts a model into a DTO.
func NewProgressResponse(record models.ProgressRecord) ProgressResponse {
	return ProgressResponse{
		StudentID:   record.StudentID,
		SubjectID:   record.SubjectID,
		SubjectName: record.Subject.Name,
		Percentage:  record.Percentage,
		UpdatedAt:   record.UpdatedAt,
	}
}

// NewProgressResponseSlice converts a slice of models into DTOs.
func NewProgressResponseSlice(records []models.ProgressRecord) []ProgressResponse {
	out := make([]ProgressResponse, 0, len(records))
	for _, record := range records {
		out = append(out, NewProgressResponse(record))
	}
	return out
}

// RecalculateResponse summarizes one bulk recalculation run.
type RecalculateResponse struct {
	Pairs     int `json:"pairs"`
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
}
