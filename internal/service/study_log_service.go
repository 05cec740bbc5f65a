package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

var (
	// ErrSubjectNotFound indicates an unknown subject reference.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrMentorNotFound indicates an unknown mentor reference.
	ErrMentorNotFound = errors.New("mentor not found")
)

// StudyLogService records study sessions and triggers progress recomputation.
type StudyLogService interface {
	Create(ctx context.Context, studentID uint, payload dto.StudyLogCreateRequest) (dto.StudyLogCreateResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.StudyLogResponse, error)
}

type studyLogService struct {
	logs      repository.StudyLogRepository
	subjects  repository.SubjectRepository
	mentors   repository.MentorRepository
	progress  ProgressService
	validator *validator.Validate
	logger    zerolog.Logger
	now       func() time.Time
}

// NewStudyLogService constructs the study log service.
func NewStudyLogService(logs repository.StudyLogRepository, subjects repository.SubjectRepository, mentors repository.MentorRepository, progress ProgressService, validate *validator.Validate, logger zerolog.Logger) StudyLogService {
	return &studyLogService{
		logs:      logs,
		subjects:  subjects,
		mentors:   mentors,
		progress:  progress,
		validator: validate,
		logger:    logger.With().Str("component", "study_log_service").Logger(),
		now:       time.Now,
	}
}

// Create durably commits the log row first, then recomputes progress. A
// recompute failure leaves progress stale but never fails the request: the
// session itself is already stored.
func (s *studyLogService) Create(ctx context.Context, studentID uint, payload dto.StudyLogCreateRequest) (dto.StudyLogCreateResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudyLogCreateResponse{}, err
	}

	subject, err := s.subjects.GetByID(ctx, payload.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudyLogCreateResponse{}, ErrSubjectNotFound
		}
		return dto.StudyLogCreateResponse{}, err
	}

	mentor, err := s.mentors.GetByID(ctx, payload.MentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudyLogCreateResponse{}, ErrMentorNotFound
		}
		return dto.StudyLogCreateResponse{}, err
	}

	studyDate := payload.StudyDate
	if studyDate.IsZero() {
		studyDate = s.now().UTC()
	}

	log := models.StudyLog{
		StudentID:     studentID,
		SubjectID:     subject.ID,
		MentorID:      mentor.ID,
		StudyDate:     studyDate,
		DurationHours: payload.DurationHours,
	}
	if err := s.logs.Create(ctx, &log); err != nil {
		return dto.StudyLogCreateResponse{}, err
	}
	log.Subject = subject
	log.Mentor = mentor

	response := dto.StudyLogCreateResponse{Log: dto.NewStudyLogResponse(log)}

	result, err := s.progress.Recompute(ctx, studentID, subject.ID)
	if err != nil {
		s.logger.Warn().Err(err).
			Uint("student_id", studentID).
			Uint("subject_id", subject.ID).
			Msg("progress recompute failed after log entry, progress is stale")
		return response, nil
	}

	if result.HasGoal {
		response.Progress = &dto.ProgressResponse{
			StudentID:   result.StudentID,
			SubjectID:   result.SubjectID,
			SubjectName: subject.Name,
			Percentage:  result.Percentage,
		}
	}
	response.GoalCompleted = result.GoalCompleted

	return response, nil
}

func (s *studyLogService) ListForStudent(ctx context.Context, studentID uint) ([]dto.StudyLogResponse, error) {
	logs, err := s.logs.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewStudyLogResponseSlice(logs), nil
}
