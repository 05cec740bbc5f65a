package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

// AdminSubjectService is the system-view CRUD surface over the subject catalogue.
type AdminSubjectService interface {
	List(ctx context.Context, majorArea string) ([]dto.SubjectResponse, error)
	Create(ctx context.Context, payload dto.SubjectCreateRequest, actor ActivityActor) (dto.SubjectResponse, error)
	Update(ctx context.Context, id uint, payload dto.SubjectUpdateRequest, actor ActivityActor) (dto.SubjectResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type adminSubjectService struct {
	subjects  repository.SubjectRepository
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminSubjectService constructs the admin subject service.
func NewAdminSubjectService(subjects repository.SubjectRepository, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) AdminSubjectService {
	return &adminSubjectService{
		subjects:  subjects,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "admin_subject_service").Logger(),
	}
}

func (s *adminSubjectService) List(ctx context.Context, majorArea string) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjects.List(ctx, repository.SubjectFilter{MajorArea: strings.TrimSpace(majorArea)})
	if err != nil {
		return nil, err
	}

	return dto.NewSubjectResponseSlice(subjects), nil
}

func (s *adminSubjectService) Create(ctx context.Context, payload dto.SubjectCreateRequest, actor ActivityActor) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject := models.Subject{
		Name:      strings.TrimSpace(payload.Name),
		Credits:   payload.Credits,
		MajorArea: strings.TrimSpace(payload.MajorArea),
	}
	if err := s.subjects.Create(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}

	s.record(ctx, actor, "subject_created", subject.ID, map[string]interface{}{"name": subject.Name})
	return dto.NewSubjectResponse(subject), nil
}

func (s *adminSubjectService) Update(ctx context.Context, id uint, payload dto.SubjectUpdateRequest, actor ActivityActor) (dto.SubjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubjectResponse{}, err
	}

	subject, err := s.subjects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubjectResponse{}, ErrSubjectNotFound
		}
		return dto.SubjectResponse{}, err
	}

	if payload.Name != nil {
		subject.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Credits != nil {
		subject.Credits = *payload.Credits
	}
	if payload.MajorArea != nil {
		subject.MajorArea = strings.TrimSpace(*payload.MajorArea)
	}

	if err := s.subjects.Update(ctx, &subject); err != nil {
		return dto.SubjectResponse{}, err
	}

	s.record(ctx, actor, "subject_updated", subject.ID, nil)
	return dto.NewSubjectResponse(subject), nil
}

func (s *adminSubjectService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.subjects.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}

	s.record(ctx, actor, "subject_deleted", id, nil)
	return nil
}

func (s *adminSubjectService) record(ctx context.Context, actor ActivityActor, action string, subjectID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}

	id := subjectID
	if _, err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "subject",
		EntityID:   &id,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record subject activity")
	}
}
