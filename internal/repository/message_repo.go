package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// MessageRepository persists the append-only message log.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListInbox(ctx context.Context, recipientID uint, recipientRole string) ([]models.Message, error)
	ListSent(ctx context.Context, senderID uint, senderRole string) ([]models.Message, error)
	// MarkRead flags a message as read; scoped to the recipient so users
	// cannot touch other inboxes. gorm.ErrRecordNotFound when no row matches.
	MarkRead(ctx context.Context, id, recipientID uint, recipientRole string) (models.Message, error)
	CountUnread(ctx context.Context, recipientID uint, recipientRole string) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository constructs the message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) ListInbox(ctx context.Context, recipientID uint, recipientRole string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND recipient_role = ?", recipientID, recipientRole).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) ListSent(ctx context.Context, senderID uint, senderRole string) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("sender_id = ? AND sender_role = ?", senderID, senderRole).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, id, recipientID uint, recipientRole string) (models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ? AND recipient_role = ?", id, recipientID, recipientRole).
		First(&message).Error; err != nil {
		return models.Message{}, err
	}

	if !message.IsRead {
		if err := r.db.WithContext(ctx).
			Model(&message).
			Update("is_read", true).Error; err != nil {
			return models.Message{}, err
		}
	}

	return message, nil
}

func (r *messageRepository) CountUnread(ctx context.Context, recipientID uint, recipientRole string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ? AND recipient_role = ? AND is_read = ?", recipientID, recipientRole, false).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
