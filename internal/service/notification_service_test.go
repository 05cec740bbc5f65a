package service

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

func TestNotifyGoalCompletedPersistsAndDelivers(t *testing.T) {
	db := openTestDB(t)
	student, mentor, subject := seedPair(t, db)

	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()
	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	svc := NewNotificationService(repository.NewMessageRepository(db), redisClient, "edumentor", nil, zerolog.Nop())

	stream, cleanup := svc.Subscribe(models.RoleStudent, student.ID)
	defer cleanup()

	svc.NotifyGoalCompleted(context.Background(), GoalCompletion{
		GoalID:      7,
		MentorID:    mentor.ID,
		StudentID:   student.ID,
		SubjectName: subject.Name,
		StudentName: student.Name,
	})

	var stored models.Message
	require.NoError(t, db.First(&stored).Error)
	require.Equal(t, mentor.ID, stored.SenderID)
	require.Equal(t, models.RoleMentor, stored.SenderRole)
	require.Equal(t, student.ID, stored.RecipientID)
	require.Equal(t, models.RoleStudent, stored.RecipientRole)
	require.Equal(t,
		"Congratulations Ani Lestari! You have reached your study goal for Algorithms. Keep up the great work.",
		stored.Content)
	require.False(t, stored.IsRead)

	select {
	case delivered := <-stream:
		require.Equal(t, stored.ID, delivered.ID)
		require.Equal(t, stored.Content, delivered.Content)
	default:
		t.Fatal("expected a live delivery on the subscriber stream")
	}
}

func TestBroadcastMessageOnlyReachesRecipient(t *testing.T) {
	db := openTestDB(t)

	svc := NewNotificationService(repository.NewMessageRepository(db), nil, "", nil, zerolog.Nop())

	recipientStream, recipientCleanup := svc.Subscribe(models.RoleStudent, 1)
	defer recipientCleanup()
	bystanderStream, bystanderCleanup := svc.Subscribe(models.RoleStudent, 2)
	defer bystanderCleanup()

	svc.BroadcastMessage(context.Background(), dto.MessageResponse{
		ID:            1,
		RecipientID:   1,
		RecipientRole: models.RoleStudent,
		Content:       "hello",
	})

	select {
	case delivered := <-recipientStream:
		require.Equal(t, "hello", delivered.Content)
	default:
		t.Fatal("expected delivery to the addressed subscriber")
	}

	select {
	case <-bystanderStream:
		t.Fatal("message leaked to an unrelated subscriber")
	default:
	}
}

func TestUnsubscribeClosesStream(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(repository.NewMessageRepository(db), nil, "", nil, zerolog.Nop())

	stream, cleanup := svc.Subscribe(models.RoleMentor, 9)
	cleanup()

	_, open := <-stream
	require.False(t, open)
}

func TestHandleEventSuppressesOwnNode(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotificationService(repository.NewMessageRepository(db), nil, "", nil, zerolog.Nop()).(*notificationService)

	stream, cleanup := svc.Subscribe(models.RoleStudent, 3)
	defer cleanup()

	own := `{"source":"` + svc.nodeID + `","message":{"id":1,"recipient_id":3,"recipient_role":"student","content":"dup"}}`
	svc.handleEvent([]byte(own))

	select {
	case <-stream:
		t.Fatal("event originating on this node must not be re-broadcast")
	default:
	}

	foreign := `{"source":"other-node","message":{"id":2,"recipient_id":3,"recipient_role":"student","content":"fresh"}}`
	svc.handleEvent([]byte(foreign))

	select {
	case delivered := <-stream:
		require.Equal(t, "fresh", delivered.Content)
	default:
		t.Fatal("expected event from another node to be delivered")
	}
}
