package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

func newGoalService(db *gorm.DB) GoalService {
	return NewGoalService(
		repository.NewGoalRepository(db),
		repository.NewStudentRepository(db),
		repository.NewSubjectRepository(db),
		newProgressService(db, &recordingNotifier{}),
		NewActivityService(repository.NewActivityLogRepository(db), zerolog.Nop()),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func TestGoalCreateComputesProgressImmediately(t *testing.T) {
	db := openTestDB(t)
	student, mentor, subject := seedPair(t, db)
	addStudyLog(t, db, student, mentor, subject, 4)

	svc := newGoalService(db)
	goal, err := svc.Create(context.Background(), mentor.ID, dto.GoalCreateRequest{
		StudentID:   student.ID,
		SubjectID:   subject.ID,
		TargetHours: 16,
		DueDate:     time.Now().UTC().Add(14 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.Equal(t, mentor.ID, goal.MentorID)
	require.False(t, goal.IsMet)

	// Pre-existing hours count toward the new target right away.
	var record models.ProgressRecord
	require.NoError(t, db.Where("student_id = ? AND subject_id = ?", student.ID, subject.ID).First(&record).Error)
	require.InDelta(t, 25, record.Percentage, 0.001)
}

func TestGoalCreateRejectsUnknownStudent(t *testing.T) {
	db := openTestDB(t)
	_, mentor, subject := seedPair(t, db)

	svc := newGoalService(db)
	_, err := svc.Create(context.Background(), mentor.ID, dto.GoalCreateRequest{
		StudentID:   999,
		SubjectID:   subject.ID,
		TargetHours: 10,
		DueDate:     time.Now().UTC().Add(24 * time.Hour),
	})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestGoalToggleMetOverrideAndRecompute(t *testing.T) {
	db := openTestDB(t)
	student, mentor, subject := seedPair(t, db)
	addStudyLog(t, db, student, mentor, subject, 3)

	goal := models.Goal{
		StudentID:   student.ID,
		SubjectID:   subject.ID,
		MentorID:    mentor.ID,
		TargetHours: 10,
		DueDate:     time.Now().UTC().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&goal).Error)

	svc := newGoalService(db)
	actor := ActivityActor{ID: mentor.ID, Role: models.RoleMentor}
	ctx := context.Background()

	// Force the latch on: with no remaining unmet goal the pair records zero.
	updated, err := svc.ToggleMet(ctx, goal.ID, true, actor)
	require.NoError(t, err)
	require.True(t, updated.IsMet)

	var record models.ProgressRecord
	require.NoError(t, db.Where("student_id = ? AND subject_id = ?", student.ID, subject.ID).First(&record).Error)
	require.Zero(t, record.Percentage)

	// Reopening the goal restores the derived percentage.
	updated, err = svc.ToggleMet(ctx, goal.ID, false, actor)
	require.NoError(t, err)
	require.False(t, updated.IsMet)

	require.NoError(t, db.Where("student_id = ? AND subject_id = ?", student.ID, subject.ID).First(&record).Error)
	require.InDelta(t, 30, record.Percentage, 0.001)

	// The override left an audit trail entry.
	var entries int64
	require.NoError(t, db.Model(&models.ActivityLog{}).Where("action = ?", "goal_met_override").Count(&entries).Error)
	require.EqualValues(t, 2, entries)

	_, err = svc.ToggleMet(ctx, goal.ID+50, true, actor)
	require.ErrorIs(t, err, ErrGoalNotFound)
}
