package dto

import (
	"time"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// StudyLogCreateRequest records one study session.
type StudyLogCreateRequest struct {
	SubjectID     uint      `json:"subject_id" validate:"required,min=1"`
	MentorID      uint      `json:"mentor_id" validate:"required,min=1"`
	StudyDate     time.Time `json:"study_date"`
	DurationHours float64   `json:"duration_hours" validate:"required,gt=0,lte=24"`
}

// StudyLogResponse is the serialized representation of a study session.
type StudyLogResponse struct {
	ID            uint      `json:"id"`
	SubjectID     uint      `json:"subject_id"`
	SubjectName   string    `json:"subject_name"`
	MentorID      uint      `json:"mentor_id"`
	MentorName    string    `json:"mentor_name"`
	StudyDate     time.Time `json:"study_date"`
	DurationHours float64   `json:"duration_hours"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewStudyLogResponse converts a model into a DTO.
func NewStudyLogResponse(log models.StudyLog) StudyLogResponse {
	return StudyLogResponse{
		ID:            log.ID,
		SubjectID:     log.SubjectID,
		SubjectName:   log.Subject.Name,
		MentorID:      log.MentorID,
		MentorName:    log.Mentor.Name,
		StudyDate:     log.StudyDate,
		DurationHours: log.DurationHours,
		CreatedAt:     log.CreatedAt,
	}
}

// NewStudyLogResponseSlice converts a slice of models into DTOs.
func NewStudyLogResponseSlice(logs []models.StudyLog) []StudyLogResponse {
	out := make([]StudyLogResponse, 0, len(logs))
	for _, log := range logs {
		out = append(out, NewStudyLogResponse(log))
	}
	return out
}

// StudyLogCreateResponse pairs the stored log with the progress state it produced.
type StudyLogCreateResponse struct {
	Log           StudyLogResponse  `json:"log"`
	Progress      *ProgressResponse `json:"progress,omitempty"`
	GoalCompleted bool              `json:"goal_completed"`
}
