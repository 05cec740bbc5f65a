package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

func newDashboardService(db *gorm.DB, cache *redis.Client) DashboardService {
	return NewDashboardService(
		repository.NewStudyLogRepository(db),
		repository.NewGoalRepository(db),
		repository.NewProgressRepository(db),
		repository.NewMessageRepository(db),
		repository.NewFeedbackRepository(db),
		cache,
		time.Minute,
		zerolog.Nop(),
	)
}

func TestStudentDashboardAggregationAndCaching(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()
	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db := openTestDB(t)
	student, mentor, subject := seedPair(t, db)

	second := models.Subject{Name: "Databases", Credits: 3, MajorArea: "Computer Science"}
	require.NoError(t, db.Create(&second).Error)

	addStudyLog(t, db, student, mentor, subject, 2)
	addStudyLog(t, db, student, mentor, subject, 3)
	addStudyLog(t, db, student, mentor, second, 1.5)

	goal := models.Goal{
		StudentID:   student.ID,
		SubjectID:   subject.ID,
		MentorID:    mentor.ID,
		TargetHours: 10,
		DueDate:     time.Now().UTC().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&goal).Error)

	record := models.ProgressRecord{StudentID: student.ID, SubjectID: subject.ID, Percentage: 50}
	require.NoError(t, db.Create(&record).Error)

	unreadMessage := models.Message{
		SenderID:      mentor.ID,
		SenderRole:    models.RoleMentor,
		RecipientID:   student.ID,
		RecipientRole: models.RoleStudent,
		Content:       "hello",
	}
	require.NoError(t, db.Create(&unreadMessage).Error)

	svc := newDashboardService(db, redisClient)
	ctx := context.Background()

	first, err := svc.Student(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, first.RecentLogs, 3)
	require.Len(t, first.HoursBySubject, 2)
	require.Len(t, first.Progress, 1)
	require.Len(t, first.Goals, 1)
	require.EqualValues(t, 1, first.UnreadMessages)

	totals := make(map[string]float64)
	for _, entry := range first.HoursBySubject {
		totals[entry.SubjectName] = entry.TotalHours
	}
	require.InDelta(t, 5, totals["Algorithms"], 0.001)
	require.InDelta(t, 1.5, totals["Databases"], 0.001)

	// New rows written after the first call stay invisible until the TTL lapses.
	addStudyLog(t, db, student, mentor, subject, 4)
	cached, err := svc.Student(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, cached.RecentLogs, 3)

	mini.FastForward(2 * time.Minute)
	fresh, err := svc.Student(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, fresh.RecentLogs, 4)
}

func TestMentorDashboardGoalCounts(t *testing.T) {
	db := openTestDB(t)
	student, mentor, subject := seedPair(t, db)

	open := models.Goal{StudentID: student.ID, SubjectID: subject.ID, MentorID: mentor.ID, TargetHours: 10, DueDate: time.Now().UTC().Add(24 * time.Hour)}
	met := models.Goal{StudentID: student.ID, SubjectID: subject.ID, MentorID: mentor.ID, TargetHours: 5, DueDate: time.Now().UTC().Add(48 * time.Hour), IsMet: true}
	require.NoError(t, db.Create(&open).Error)
	require.NoError(t, db.Create(&met).Error)

	feedback := models.Feedback{StudentID: student.ID, MentorID: mentor.ID, Comments: "strong progress"}
	require.NoError(t, db.Create(&feedback).Error)

	svc := newDashboardService(db, nil)
	dashboard, err := svc.Mentor(context.Background(), mentor.ID)
	require.NoError(t, err)
	require.Len(t, dashboard.Goals, 2)
	require.Equal(t, 1, dashboard.GoalsMet)
	require.Equal(t, 1, dashboard.GoalsOpen)
	require.Len(t, dashboard.RecentFeedback, 1)
	require.Zero(t, dashboard.UnreadMessages)
}
