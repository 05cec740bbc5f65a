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

func newStudyLogService(db *gorm.DB, notifier GoalCompletionNotifier) StudyLogService {
	return NewStudyLogService(
		repository.NewStudyLogRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewMentorRepository(db),
		newProgressService(db, notifier),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func TestStudyLogCreateRecomputesProgress(t *testing.T) {
	db := openTestDB(t)
	student, mentor, subject := seedPair(t, db)

	goal := models.Goal{
		StudentID:   student.ID,
		SubjectID:   subject.ID,
		MentorID:    mentor.ID,
		TargetHours: 8,
		DueDate:     time.Now().UTC().Add(48 * time.Hour),
	}
	require.NoError(t, db.Create(&goal).Error)

	notifier := &recordingNotifier{}
	svc := newStudyLogService(db, notifier)
	ctx := context.Background()

	first, err := svc.Create(ctx, student.ID, dto.StudyLogCreateRequest{
		SubjectID:     subject.ID,
		MentorID:      mentor.ID,
		DurationHours: 2,
	})
	require.NoError(t, err)
	require.Equal(t, "Algorithms", first.Log.SubjectName)
	require.NotNil(t, first.Progress)
	require.InDelta(t, 25, first.Progress.Percentage, 0.001)
	require.False(t, first.GoalCompleted)

	second, err := svc.Create(ctx, student.ID, dto.StudyLogCreateRequest{
		SubjectID:     subject.ID,
		MentorID:      mentor.ID,
		DurationHours: 6,
	})
	require.NoError(t, err)
	require.NotNil(t, second.Progress)
	require.InDelta(t, 100, second.Progress.Percentage, 0.001)
	require.True(t, second.GoalCompleted)
	require.Len(t, notifier.completions, 1)

	logs, err := svc.ListForStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
}

func TestStudyLogCreateRejectsUnknownReferences(t *testing.T) {
	db := openTestDB(t)
	student, mentor, subject := seedPair(t, db)

	svc := newStudyLogService(db, &recordingNotifier{})
	ctx := context.Background()

	_, err := svc.Create(ctx, student.ID, dto.StudyLogCreateRequest{
		SubjectID:     subject.ID + 100,
		MentorID:      mentor.ID,
		DurationHours: 1,
	})
	require.ErrorIs(t, err, ErrSubjectNotFound)

	_, err = svc.Create(ctx, student.ID, dto.StudyLogCreateRequest{
		SubjectID:     subject.ID,
		MentorID:      mentor.ID + 100,
		DurationHours: 1,
	})
	require.ErrorIs(t, err, ErrMentorNotFound)

	_, err = svc.Create(ctx, student.ID, dto.StudyLogCreateRequest{
		SubjectID:     subject.ID,
		MentorID:      mentor.ID,
		DurationHours: 30,
	})
	require.Error(t, err)
}

func TestStudyLogCreateSurvivesRecomputeFailure(t *testing.T) {
	db := openTestDB(t)
	student, mentor, subject := seedPair(t, db)

	logs := &flakyStudyLogRepository{
		StudyLogRepository: repository.NewStudyLogRepository(db),
		failStudentID:      student.ID,
	}
	svc := NewStudyLogService(
		logs,
		repository.NewSubjectRepository(db),
		repository.NewMentorRepository(db),
		NewProgressService(logs, repository.NewGoalRepository(db), repository.NewProgressRepository(db), nil, zerolog.Nop()),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)

	response, err := svc.Create(context.Background(), student.ID, dto.StudyLogCreateRequest{
		SubjectID:     subject.ID,
		MentorID:      mentor.ID,
		DurationHours: 3,
	})
	require.NoError(t, err)
	require.Nil(t, response.Progress)

	// The session itself was committed even though recomputation failed.
	var count int64
	require.NoError(t, db.Model(&models.StudyLog{}).Where("student_id = ?", student.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
}
