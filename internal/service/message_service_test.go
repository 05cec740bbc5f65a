package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

func newMessageService(db *gorm.DB, dispatcher NotificationService) MessageService {
	return NewMessageService(
		repository.NewMessageRepository(db),
		repository.NewStudentRepository(db),
		repository.NewMentorRepository(db),
		dispatcher,
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func TestMessageSendSanitizesAndDelivers(t *testing.T) {
	db := openTestDB(t)
	student, mentor, _ := seedPair(t, db)

	dispatcher := NewNotificationService(repository.NewMessageRepository(db), nil, "", nil, zerolog.Nop())
	svc := newMessageService(db, dispatcher)

	stream, cleanup := dispatcher.Subscribe(models.RoleStudent, student.ID)
	defer cleanup()

	sent, err := svc.Send(context.Background(), Sender{ID: mentor.ID, Role: models.RoleMentor}, dto.MessageSendRequest{
		RecipientID:   student.ID,
		RecipientRole: models.RoleStudent,
		Content:       `Keep going!<script>alert("x")</script>`,
	})
	require.NoError(t, err)
	require.Equal(t, "Keep going!", sent.Content)
	require.Equal(t, models.RoleMentor, sent.SenderRole)

	select {
	case delivered := <-stream:
		require.Equal(t, sent.ID, delivered.ID)
	default:
		t.Fatal("expected live delivery to the recipient stream")
	}

	inbox, err := svc.Inbox(context.Background(), student.ID, models.RoleStudent)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	require.False(t, inbox[0].IsRead)
}

func TestMessageSendRejectsBadInput(t *testing.T) {
	db := openTestDB(t)
	student, mentor, _ := seedPair(t, db)

	svc := newMessageService(db, nil)
	sender := Sender{ID: mentor.ID, Role: models.RoleMentor}
	ctx := context.Background()

	// Sanitization can strip the payload down to nothing.
	_, err := svc.Send(ctx, sender, dto.MessageSendRequest{
		RecipientID:   student.ID,
		RecipientRole: models.RoleStudent,
		Content:       `<script>alert("x")</script>`,
	})
	require.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Send(ctx, sender, dto.MessageSendRequest{
		RecipientID:   student.ID + 50,
		RecipientRole: models.RoleStudent,
		Content:       "hello",
	})
	require.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestMessageMarkReadScopedToRecipient(t *testing.T) {
	db := openTestDB(t)
	student, mentor, _ := seedPair(t, db)

	svc := newMessageService(db, nil)
	ctx := context.Background()

	sent, err := svc.Send(ctx, Sender{ID: mentor.ID, Role: models.RoleMentor}, dto.MessageSendRequest{
		RecipientID:   student.ID,
		RecipientRole: models.RoleStudent,
		Content:       "read me",
	})
	require.NoError(t, err)

	// The sender cannot mark the recipient's copy as read.
	_, err = svc.MarkRead(ctx, sent.ID, mentor.ID, models.RoleMentor)
	require.ErrorIs(t, err, ErrMessageNotFound)

	updated, err := svc.MarkRead(ctx, sent.ID, student.ID, models.RoleStudent)
	require.NoError(t, err)
	require.True(t, updated.IsRead)
}
