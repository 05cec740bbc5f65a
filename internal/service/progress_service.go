package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/observability"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

// ErrStoreUnavailable wraps database failures inside the progress engine.
// Callers that already committed their primary write treat it as non-fatal:
// progress stays stale until the next successful recompute.
var ErrStoreUnavailable = errors.New("store unavailable")

// GoalCompletion carries everything needed to announce a completed goal.
type GoalCompletion struct {
	GoalID      uint
	MentorID    uint
	StudentID   uint
	SubjectName string
	StudentName string
}

// ProgressChangeResult reports the outcome of one recomputation.
type ProgressChangeResult struct {
	StudentID     uint
	SubjectID     uint
	Percentage    float64
	HasGoal       bool
	GoalCompleted bool
}

// GoalCompletionNotifier dispatches a congratulation message when a goal
// latches. Implementations are best-effort; they never return an error.
type GoalCompletionNotifier interface {
	NotifyGoalCompleted(ctx context.Context, completion GoalCompletion)
}

// ProgressService recomputes completion percentages from the study log.
type ProgressService interface {
	Recompute(ctx context.Context, studentID, subjectID uint) (ProgressChangeResult, error)
	RecalculateAll(ctx context.Context) (dto.RecalculateResponse, error)
	ListForStudent(ctx context.Context, studentID uint) ([]dto.ProgressResponse, error)
}

type progressService struct {
	logs     repository.StudyLogRepository
	goals    repository.GoalRepository
	progress repository.ProgressRepository
	notifier GoalCompletionNotifier
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewProgressService constructs the progress engine.
func NewProgressService(logs repository.StudyLogRepository, goals repository.GoalRepository, progress repository.ProgressRepository, notifier GoalCompletionNotifier, logger zerolog.Logger) ProgressService {
	return &progressService{
		logs:     logs,
		goals:    goals,
		progress: progress,
		notifier: notifier,
		logger:   logger.With().Str("component", "progress_service").Logger(),
		tracer:   otel.Tracer("github.com/edumentor/edumentor-go-api/internal/service/progress"),
	}
}

// Recompute derives the pair's percentage from the sum of its study log rows
// and the earliest-due unmet goal, persists it, and latches the goal when the
// percentage reaches 100. Calling it again with no new log rows yields the
// same percentage and never re-notifies: the latch only transitions once.
func (s *progressService) Recompute(ctx context.Context, studentID, subjectID uint) (ProgressChangeResult, error) {
	attrs := []attribute.KeyValue{
		attribute.Int("progress.student_id", int(studentID)),
		attribute.Int("progress.subject_id", int(subjectID)),
	}
	spanCtx, span := s.tracer.Start(ctx, "progress.recompute", trace.WithAttributes(attrs...))
	defer span.End()

	result := ProgressChangeResult{StudentID: studentID, SubjectID: subjectID}

	total, err := s.logs.SumDurationHours(spanCtx, studentID, subjectID)
	if err != nil {
		span.RecordError(err)
		observability.ProgressRecomputesTotal().WithLabelValues("error").Inc()
		return result, fmt.Errorf("%w: sum study hours: %v", ErrStoreUnavailable, err)
	}

	goal, err := s.goals.FindUnmetForPair(spanCtx, studentID, subjectID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			span.RecordError(err)
			observability.ProgressRecomputesTotal().WithLabelValues("error").Inc()
			return result, fmt.Errorf("%w: find unmet goal: %v", ErrStoreUnavailable, err)
		}

		// No open target: percentage is undefined, record zero and skip the
		// notification path entirely.
		if err := s.progress.Upsert(spanCtx, studentID, subjectID, 0); err != nil {
			span.RecordError(err)
			observability.ProgressRecomputesTotal().WithLabelValues("error").Inc()
			return result, fmt.Errorf("%w: upsert progress: %v", ErrStoreUnavailable, err)
		}

		observability.ProgressRecomputesTotal().WithLabelValues("no_goal").Inc()
		return result, nil
	}

	result.HasGoal = true

	percentage := 100 * total / goal.TargetHours
	if percentage > 100 {
		percentage = 100
	}
	result.Percentage = percentage

	if err := s.progress.Upsert(spanCtx, studentID, subjectID, percentage); err != nil {
		span.RecordError(err)
		observability.ProgressRecomputesTotal().WithLabelValues("error").Inc()
		return result, fmt.Errorf("%w: upsert progress: %v", ErrStoreUnavailable, err)
	}

	if percentage >= 100 {
		latched, err := s.goals.MarkMet(spanCtx, goal.ID)
		if err != nil {
			span.RecordError(err)
			observability.ProgressRecomputesTotal().WithLabelValues("error").Inc()
			return result, fmt.Errorf("%w: mark goal met: %v", ErrStoreUnavailable, err)
		}

		if latched {
			result.GoalCompleted = true
			observability.GoalsCompletedTotal().Inc()
			s.logger.Info().
				Uint("goal_id", goal.ID).
				Uint("student_id", studentID).
				Uint("subject_id", subjectID).
				Msg("goal completed")

			if s.notifier != nil {
				s.notifier.NotifyGoalCompleted(spanCtx, GoalCompletion{
					GoalID:      goal.ID,
					MentorID:    goal.MentorID,
					StudentID:   studentID,
					SubjectName: goal.Subject.Name,
					StudentName: goal.Student.Name,
				})
			}
		}
	}

	observability.ProgressRecomputesTotal().WithLabelValues("ok").Inc()
	return result, nil
}

// RecalculateAll recomputes every pair present in the study log. One pair's
// failure never aborts the rest.
func (s *progressService) RecalculateAll(ctx context.Context) (dto.RecalculateResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "progress.recalculate_all")
	defer span.End()

	pairs, err := s.logs.DistinctPairs(spanCtx)
	if err != nil {
		span.RecordError(err)
		return dto.RecalculateResponse{}, fmt.Errorf("%w: list study pairs: %v", ErrStoreUnavailable, err)
	}

	summary := dto.RecalculateResponse{Pairs: len(pairs)}
	for _, pair := range pairs {
		if _, err := s.Recompute(spanCtx, pair.StudentID, pair.SubjectID); err != nil {
			summary.Failed++
			s.logger.Warn().Err(err).
				Uint("student_id", pair.StudentID).
				Uint("subject_id", pair.SubjectID).
				Msg("pair recompute failed during bulk recalculation")
			continue
		}
		summary.Processed++
	}

	return summary, nil
}

// ListForStudent returns the stored progress records for a student.
func (s *progressService) ListForStudent(ctx context.Context, studentID uint) ([]dto.ProgressResponse, error) {
	records, err := s.progress.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("%w: list progress: %v", ErrStoreUnavailable, err)
	}

	return dto.NewProgressResponseSlice(records), nil
}
