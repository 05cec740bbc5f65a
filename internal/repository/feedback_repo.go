package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// FeedbackRepository persists mentor feedback entries.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	ListForStudent(ctx context.Context, studentID uint) ([]models.Feedback, error)
	ListByMentor(ctx context.Context, mentorID uint) ([]models.Feedback, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository constructs the feedback repository.
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) ListForStudent(ctx context.Context, studentID uint) ([]models.Feedback, error) {
	var entries []models.Feedback
	if err := r.db.WithContext(ctx).
		Preload("Mentor").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *feedbackRepository) ListByMentor(ctx context.Context, mentorID uint) ([]models.Feedback, error) {
	var entries []models.Feedback
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("mentor_id = ?", mentorID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}
