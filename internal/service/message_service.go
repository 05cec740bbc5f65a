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
	"github.com/edumentor/edumentor-go-api/internal/observability"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

var (
	// ErrRecipientNotFound indicates an unknown message recipient.
	ErrRecipientNotFound = errors.New("recipient not found")
	// ErrMessageNotFound indicates a missing message or one outside the
	// caller's inbox.
	ErrMessageNotFound = errors.New("message not found")
	// ErrEmptyMessage indicates the content vanished after sanitization.
	ErrEmptyMessage = errors.New("message content empty after sanitization")
)

// Sender identifies the authenticated author of a message.
type Sender struct {
	ID   uint
	Role string
}

// MessageService handles person-to-person mail between students and mentors.
type MessageService interface {
	Send(ctx context.Context, sender Sender, payload dto.MessageSendRequest) (dto.MessageResponse, error)
	Inbox(ctx context.Context, userID uint, role string) ([]dto.MessageResponse, error)
	Sent(ctx context.Context, userID uint, role string) ([]dto.MessageResponse, error)
	MarkRead(ctx context.Context, id, userID uint, role string) (dto.MessageResponse, error)
}

type messageService struct {
	messages   repository.MessageRepository
	students   repository.StudentRepository
	mentors    repository.MentorRepository
	dispatcher NotificationService
	validator  *validator.Validate
	sanitizer  *bluemonday.Policy
	logger     zerolog.Logger
}

// NewMessageService constructs the message service.
func NewMessageService(messages repository.MessageRepository, students repository.StudentRepository, mentors repository.MentorRepository, dispatcher NotificationService, validate *validator.Validate, logger zerolog.Logger) MessageService {
	return &messageService{
		messages:   messages,
		students:   students,
		mentors:    mentors,
		dispatcher: dispatcher,
		validator:  validate,
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger.With().Str("component", "message_service").Logger(),
	}
}

func (s *messageService) Send(ctx context.Context, sender Sender, payload dto.MessageSendRequest) (dto.MessageResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MessageResponse{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return dto.MessageResponse{}, ErrEmptyMessage
	}

	if err := s.recipientExists(ctx, payload.RecipientID, payload.RecipientRole); err != nil {
		return dto.MessageResponse{}, err
	}

	message := models.Message{
		SenderID:      sender.ID,
		SenderRole:    sender.Role,
		RecipientID:   payload.RecipientID,
		RecipientRole: payload.RecipientRole,
		Content:       content,
	}
	if err := s.messages.Create(ctx, &message); err != nil {
		return dto.MessageResponse{}, err
	}

	response := dto.NewMessageResponse(message)
	observability.NotificationsPublishedTotal().WithLabelValues("direct").Inc()
	if s.dispatcher != nil {
		s.dispatcher.BroadcastMessage(ctx, response)
	}

	return response, nil
}

func (s *messageService) Inbox(ctx context.Context, userID uint, role string) ([]dto.MessageResponse, error) {
	messages, err := s.messages.ListInbox(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	return dto.NewMessageResponseSlice(messages), nil
}

func (s *messageService) Sent(ctx context.Context, userID uint, role string) ([]dto.MessageResponse, error) {
	messages, err := s.messages.ListSent(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	return dto.NewMessageResponseSlice(messages), nil
}

func (s *messageService) MarkRead(ctx context.Context, id, userID uint, role string) (dto.MessageResponse, error) {
	message, err := s.messages.MarkRead(ctx, id, userID, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MessageResponse{}, ErrMessageNotFound
		}
		return dto.MessageResponse{}, err
	}
	message.IsRead = true

	return dto.NewMessageResponse(message), nil
}

func (s *messageService) recipientExists(ctx context.Context, id uint, role string) error {
	var err error
	switch role {
	case models.RoleStudent:
		_, err = s.students.GetByID(ctx, id)
	case models.RoleMentor:
		_, err = s.mentors.GetByID(ctx, id)
	default:
		return ErrRecipientNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipientNotFound
		}
		return err
	}

	return nil
}
