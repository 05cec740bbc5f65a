package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/models"
)

// StudyPair identifies one (student, subject) combination present in the log.
type StudyPair struct {
	StudentID uint
	SubjectID uint
}

// StudySummaryRow aggregates total logged hours per student and subject.
type StudySummaryRow struct {
	StudentID   uint    `json:"student_id"`
	StudentName string  `json:"student_name"`
	SubjectID   uint    `json:"subject_id"`
	SubjectName string  `json:"subject_name"`
	TotalHours  float64 `json:"total_hours"`
	Sessions    int64   `json:"sessions"`
}

// StudyLogRepository persists append-only study session rows.
type StudyLogRepository interface {
	Create(ctx context.Context, log *models.StudyLog) error
	ListByStudent(ctx context.Context, studentID uint) ([]models.StudyLog, error)
	SumDurationHours(ctx context.Context, studentID, subjectID uint) (float64, error)
	DistinctPairs(ctx context.Context) ([]StudyPair, error)
	Summary(ctx context.Context) ([]StudySummaryRow, error)
}

type studyLogRepository struct {
	db *gorm.DB
}

// NewStudyLogRepository constructs the study log repository.
func NewStudyLogRepository(db *gorm.DB) StudyLogRepository {
	return &studyLogRepository{db: db}
}

func (r *studyLogRepository) Create(ctx context.Context, log *models.StudyLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *studyLogRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.StudyLog, error) {
	var logs []models.StudyLog
	if err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Mentor").
		Where("student_id = ?", studentID).
		Order("study_date DESC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *studyLogRepository) SumDurationHours(ctx context.Context, studentID, subjectID uint) (float64, error) {
	var total float64
	if err := r.db.WithContext(ctx).
		Model(&models.StudyLog{}).
		Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		Select("COALESCE(SUM(duration_hours), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

func (r *studyLogRepository) DistinctPairs(ctx context.Context) ([]StudyPair, error) {
	var pairs []StudyPair
	if err := r.db.WithContext(ctx).
		Model(&models.StudyLog{}).
		Distinct("student_id", "subject_id").
		Find(&pairs).Error; err != nil {
		return nil, err
	}

	return pairs, nil
}

func (r *studyLogRepository) Summary(ctx context.Context) ([]StudySummaryRow, error) {
	var rows []StudySummaryRow
	if err := r.db.WithContext(ctx).
		Model(&models.StudyLog{}).
		Select("study_logs.student_id, students.name AS student_name, study_logs.subject_id, subjects.name AS subject_name, SUM(study_logs.duration_hours) AS total_hours, COUNT(study_logs.id) AS sessions").
		Joins("JOIN students ON students.id = study_logs.student_id").
		Joins("JOIN subjects ON subjects.id = study_logs.subject_id").
		Group("study_logs.student_id, students.name, study_logs.subject_id, subjects.name").
		Order("students.name ASC, subjects.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}
