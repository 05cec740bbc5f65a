package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

var (
	// ErrGoalNotFound indicates an unknown goal reference.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrStudentNotFound indicates an unknown student reference.
	ErrStudentNotFound = errors.New("student not found")
)

// GoalService manages mentor-set study targets.
type GoalService interface {
	Create(ctx context.Context, mentorID uint, payload dto.GoalCreateRequest) (dto.GoalResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.GoalResponse, error)
	ListForMentor(ctx context.Context, mentorID uint) ([]dto.GoalResponse, error)
	// ToggleMet is the administrative latch override. It is the only path
	// that may reset is_met to false; afterwards progress is recomputed so
	// the pair's record matches the new goal state.
	ToggleMet(ctx context.Context, id uint, met bool, actor ActivityActor) (dto.GoalResponse, error)
}

type goalService struct {
	goals     repository.GoalRepository
	students  repository.StudentRepository
	subjects  repository.SubjectRepository
	progress  ProgressService
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGoalService constructs the goal service.
func NewGoalService(goals repository.GoalRepository, students repository.StudentRepository, subjects repository.SubjectRepository, progress ProgressService, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) GoalService {
	return &goalService{
		goals:     goals,
		students:  students,
		subjects:  subjects,
		progress:  progress,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "goal_service").Logger(),
	}
}

func (s *goalService) Create(ctx context.Context, mentorID uint, payload dto.GoalCreateRequest) (dto.GoalResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GoalResponse{}, err
	}

	if _, err := s.students.GetByID(ctx, payload.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GoalResponse{}, ErrStudentNotFound
		}
		return dto.GoalResponse{}, err
	}

	if _, err := s.subjects.GetByID(ctx, payload.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GoalResponse{}, ErrSubjectNotFound
		}
		return dto.GoalResponse{}, err
	}

	goal := models.Goal{
		StudentID:   payload.StudentID,
		SubjectID:   payload.SubjectID,
		MentorID:    mentorID,
		TargetHours: payload.TargetHours,
		DueDate:     payload.DueDate,
	}
	if err := s.goals.Create(ctx, &goal); err != nil {
		return dto.GoalResponse{}, err
	}

	created, err := s.goals.GetByID(ctx, goal.ID)
	if err != nil {
		return dto.GoalResponse{}, err
	}

	// A fresh goal gives the pair a target, so progress against it is
	// computed right away rather than waiting for the next log entry.
	if _, err := s.progress.Recompute(ctx, goal.StudentID, goal.SubjectID); err != nil {
		s.logger.Warn().Err(err).Uint("goal_id", goal.ID).Msg("progress recompute failed after goal creation")
	}

	return dto.NewGoalResponse(created), nil
}

func (s *goalService) ListForStudent(ctx context.Context, studentID uint) ([]dto.GoalResponse, error) {
	goals, err := s.goals.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	return dto.NewGoalResponseSlice(goals), nil
}

func (s *goalService) ListForMentor(ctx context.Context, mentorID uint) ([]dto.GoalResponse, error) {
	goals, err := s.goals.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	return dto.NewGoalResponseSlice(goals), nil
}

func (s *goalService) ToggleMet(ctx context.Context, id uint, met bool, actor ActivityActor) (dto.GoalResponse, error) {
	goal, err := s.goals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GoalResponse{}, ErrGoalNotFound
		}
		return dto.GoalResponse{}, err
	}

	if err := s.goals.SetMet(ctx, id, met); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GoalResponse{}, ErrGoalNotFound
		}
		return dto.GoalResponse{}, err
	}

	if s.activity != nil {
		goalID := goal.ID
		if _, err := s.activity.Record(ctx, ActivityEntry{
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Action:     "goal_met_override",
			EntityType: "goal",
			EntityID:   &goalID,
			Metadata:   map[string]interface{}{"is_met": met},
		}); err != nil {
			s.logger.Warn().Err(err).Uint("goal_id", goal.ID).Msg("failed to record goal override")
		}
	}

	if _, err := s.progress.Recompute(ctx, goal.StudentID, goal.SubjectID); err != nil {
		s.logger.Warn().Err(err).Uint("goal_id", goal.ID).Msg("progress recompute failed after goal override")
	}

	updated, err := s.goals.GetByID(ctx, id)
	if err != nil {
		return dto.GoalResponse{}, err
	}

	return dto.NewGoalResponse(updated), nil
}
