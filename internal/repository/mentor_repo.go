package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// MentorRepository provides access to mentor accounts.
type MentorRepository interface {
	Create(ctx context.Context, mentor *models.Mentor) error
	GetByID(ctx context.Context, id uint) (models.Mentor, error)
	GetByEmail(ctx context.Context, email string) (models.Mentor, error)
	List(ctx context.Context) ([]models.Mentor, error)
	Update(ctx context.Context, mentor *models.Mentor) error
	Delete(ctx context.Context, id uint) error
}

type mentorRepository struct {
	db *gorm.DB
}

// NewMentorRepository constructs a mentor repository.
func NewMentorRepository(db *gorm.DB) MentorRepository {
	return &mentorRepository{db: db}
}

func (r *mentorRepository) Create(ctx context.Context, mentor *models.Mentor) error {
	return r.db.WithContext(ctx).Create(mentor).Error
}

func (r *mentorRepository) GetByID(ctx context.Context, id uint) (models.Mentor, error) {
	var mentor models.Mentor
	if err := r.db.WithContext(ctx).First(&mentor, id).Error; err != nil {
		return models.Mentor{}, err
	}

	return mentor, nil
}

func (r *mentorRepository) GetByEmail(ctx context.Context, email string) (models.Mentor, error) {
	var mentor models.Mentor
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&mentor).Error; err != nil {
		return models.Mentor{}, err
	}

	return mentor, nil
}

func (r *mentorRepository) List(ctx context.Context) ([]models.Mentor, error) {
	var mentors []models.Mentor
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&mentors).Error; err != nil {
		return nil, err
	}

	return mentors, nil
}

func (r *mentorRepository) Update(ctx context.Context, mentor *models.Mentor) error {
	return r.db.WithContext(ctx).Save(mentor).Error
}

func (r *mentorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Mentor{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
