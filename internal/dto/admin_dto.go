package dto

import (
	"time"

	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

// PaginationMeta accompanies paginated listings.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// SubjectCreateRequest adds a subject to the catalogue.
type SubjectCreateRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=255"`
	Credits   int    `json:"credits" validate:"required,min=1,max=60"`
	MajorArea string `json:"major_area" validate:"omitempty,max=128"`
}

// SubjectUpdateRequest updates catalogue fields; nil fields are untouched.
type SubjectUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=255"`
	Credits   *int    `json:"credits" validate:"omitempty,min=1,max=60"`
	MajorArea *string `json:"major_area" validate:"omitempty,max=128"`
}

// SubjectResponse is the serialized representation of a subject.
type SubjectResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Credits   int       `json:"credits"`
	MajorArea string    `json:"major_area"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubjectResponse converts a model into a DTO.
func NewSubjectResponse(subject models.Subject) SubjectResponse {
	return SubjectResponse{
		ID:        subject.ID,
		Name:      subject.Name,
		Credits:   subject.Credits,
		MajorArea: subject.MajorArea,
		CreatedAt: subject.CreatedAt,
	}
}

// NewSubjectResponseSlice converts a slice of models into DTOs.
func NewSubjectResponseSlice(subjects []models.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, NewSubjectResponse(subject))
	}
	return out
}

// MentorCreateRequest provisions a mentor account from the system view.
type MentorCreateRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	ExpertiseArea string `json:"expertise_area" validate:"omitempty,max=128"`
}

// MentorUpdateRequest updates mentor fields; nil fields are untouched.
type MentorUpdateRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=2,max=255"`
	Email         *string `json:"email" validate:"omitempty,email,max=255"`
	ExpertiseArea *string `json:"expertise_area" validate:"omitempty,max=128"`
}

// MentorResponse is the serialized representation of a mentor.
type MentorResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ExpertiseArea string    `json:"expertise_area"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewMentorResponse converts a model into a DTO.
func NewMentorResponse(mentor models.Mentor) MentorResponse {
	return MentorResponse{
		ID:            mentor.ID,
		Name:          mentor.Name,
		Email:         mentor.Email,
		ExpertiseArea: mentor.ExpertiseArea,
		CreatedAt:     mentor.CreatedAt,
	}
}

// NewMentorResponseSlice converts a slice of models into DTOs.
func NewMentorResponseSlice(mentors []models.Mentor) []MentorResponse {
	out := make([]MentorResponse, 0, len(mentors))
	for _, mentor := range mentors {
		out = append(out, NewMentorResponse(mentor))
	}
	return out
}

// StudySummaryResponse is the per-student, per-subject hours analytics view.
type StudySummaryResponse struct {
	Rows []repository.StudySummaryRow `json:"rows"`
}

// ActivityListRequest filters the audit trail listing.
type ActivityListRequest struct {
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
	ActorID    uint   `query:"actor_id"`
	Action     string `query:"action"`
	EntityType string `query:"entity_type"`
}

// ActivityResponse is the serialized representation of an audit entry.
type ActivityResponse struct {
	ID         uint                   `json:"id"`
	ActorID    uint                   `json:"actor_id"`
	ActorRole  string                 `json:"actor_role"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// NewActivityResponse converts a model into a DTO.
func NewActivityResponse(entry models.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:         entry.ID,
		ActorID:    entry.ActorID,
		ActorRole:  entry.ActorRole,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Metadata:   entry.Metadata,
		CreatedAt:  entry.CreatedAt,
	}
}

// ActivityListResponse pages through the audit trail.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}
