package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// ProgressRepository maintains the materialized per-pair percentage records.
type ProgressRepository interface {
	Upsert(ctx context.Context, studentID, subjectID uint, percentage float64) error
	GetByPair(ctx context.Context, studentID, subjectID uint) (models.ProgressRecord, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.ProgressRecord, error)
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository constructs the progress repository.
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Upsert(ctx context.Context, studentID, subjectID uint, percentage float64) error {
	record := models.ProgressRecord{
		StudentID:  studentID,
		SubjectID:  subjectID,
		Percentage: percentage,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "subject_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"percentage", "updated_at"}),
		}).
		Create(&record).Error
}

func (r *progressRepository) GetByPair(ctx context.Context, studentID, subjectID uint) (models.ProgressRecord, error) {
	var record models.ProgressRecord
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		First(&record).Error; err != nil {
		return models.ProgressRecord{}, err
	}

	return record, nil
}

func (r *progressRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("student_id = ?", studentID).
		Order("subject_id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}
