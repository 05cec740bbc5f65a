package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

// ErrEmptyFeedback indicates the comments vanished after sanitization.
var ErrEmptyFeedback = errors.New("feedback comments empty after sanitization")

// FeedbackService manages mentor comments on students.
type FeedbackService interface {
	Create(ctx context.Context, mentorID uint, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error)
	HistoryForStudent(ctx context.Context, studentID uint) ([]dto.FeedbackResponse, error)
	HistoryByMentor(ctx context.Context, mentorID uint) ([]dto.FeedbackResponse, error)
}

type feedbackService struct {
	feedback  repository.FeedbackRepository
	students  repository.StudentRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewFeedbackService constructs the feedback service.
func NewFeedbackService(feedback repository.FeedbackRepository, students repository.StudentRepository, validate *validator.Validate, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		feedback:  feedback,
		students:  students,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "feedback_service").Logger(),
	}
}

func (s *feedbackService) Create(ctx context.Context, mentorID uint, payload dto.FeedbackCreateRequest) (dto.FeedbackResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.FeedbackResponse{}, err
	}

	comments := strings.TrimSpace(s.sanitizer.Sanitize(payload.Comments))
	if comments == "" {
		return dto.FeedbackResponse{}, ErrEmptyFeedback
	}

	student, err := s.students.GetByID(ctx, payload.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.FeedbackResponse{}, ErrStudentNotFound
		}
		return dto.FeedbackResponse{}, err
	}

	entry := models.Feedback{
		StudentID: student.ID,
		MentorID:  mentorID,
		Comments:  comments,
	}
	if err := s.feedback.Create(ctx, &entry); err != nil {
		return dto.FeedbackResponse{}, err
	}
	entry.Student = student

	return dto.NewFeedbackResponse(entry), nil
}

func (s *feedbackService) HistoryForStudent(ctx context.Context, studentID uint) ([]dto.FeedbackResponse, error) {
	entries, err := s.feedback.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewFeedbackResponseSlice(entries), nil
}

func (s *feedbackService) HistoryByMentor(ctx context.Context, mentorID uint) ([]dto.FeedbackResponse, error) {
	entries, err := s.feedback.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	return dto.NewFeedbackResponseSlice(entries), nil
}
