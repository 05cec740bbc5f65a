package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// GoalRepository persists study goals and owns the met latch.
type GoalRepository interface {
	Create(ctx context.Context, goal *models.Goal) error
	GetByID(ctx context.Context, id uint) (models.Goal, error)
	// FindUnmetForPair returns the unmet goal with the earliest due date for
	// the pair; ties are broken by lowest ID. gorm.ErrRecordNotFound when none.
	FindUnmetForPair(ctx context.Context, studentID, subjectID uint) (models.Goal, error)
	// MarkMet flips the latch false to true. Returns true when this call
	// performed the transition, false when the goal was already met.
	MarkMet(ctx context.Context, id uint) (bool, error)
	// SetMet overrides the latch in either direction (administrative toggle).
	SetMet(ctx context.Context, id uint, met bool) error
	ListByStudent(ctx context.Context, studentID uint) ([]models.Goal, error)
	ListByMentor(ctx context.Context, mentorID uint) ([]models.Goal, error)
}

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository constructs the goal repository.
func NewGoalRepository(db *gorm.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *models.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r *goalRepository) GetByID(ctx context.Context, id uint) (models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Subject").
		Preload("Mentor").
		First(&goal, id).Error; err != nil {
		return models.Goal{}, err
	}

	return goal, nil
}

func (r *goalRepository) FindUnmetForPair(ctx context.Context, studentID, subjectID uint) (models.Goal, error) {
	var goal models.Goal
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Subject").
		Where("student_id = ? AND subject_id = ? AND is_met = ?", studentID, subjectID, false).
		Order("due_date ASC, id ASC").
		First(&goal).Error; err != nil {
		return models.Goal{}, err
	}

	return goal, nil
}

func (r *goalRepository) MarkMet(ctx context.Context, id uint) (bool, error) {
	// Conditional update keeps the latch one-way even under concurrent
	// recomputes of the same pair.
	result := r.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("id = ? AND is_met = ?", id, false).
		Update("is_met", true)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *goalRepository) SetMet(ctx context.Context, id uint, met bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.Goal{}).
		Where("id = ?", id).
		Update("is_met", met)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *goalRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Mentor").
		Where("student_id = ?", studentID).
		Order("due_date ASC").
		Find(&goals).Error; err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) ListByMentor(ctx context.Context, mentorID uint) ([]models.Goal, error) {
	var goals []models.Goal
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Subject").
		Where("mentor_id = ?", mentorID).
		Order("due_date ASC").
		Find(&goals).Error; err != nil {
		return nil, err
	}

	return goals, nil
}
