package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

// AdminMentorService manages mentor accounts from the system view.
type AdminMentorService interface {
	List(ctx context.Context) ([]dto.MentorResponse, error)
	Create(ctx context.Context, payload dto.MentorCreateRequest, actor ActivityActor) (dto.MentorResponse, error)
	Update(ctx context.Context, id uint, payload dto.MentorUpdateRequest, actor ActivityActor) (dto.MentorResponse, error)
	Delete(ctx context.Context, id uint, actor ActivityActor) error
}

type adminMentorService struct {
	mentors   repository.MentorRepository
	activity  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminMentorService constructs the admin mentor service.
func NewAdminMentorService(mentors repository.MentorRepository, activity ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) AdminMentorService {
	return &adminMentorService{
		mentors:   mentors,
		activity:  activity,
		validator: validate,
		logger:    logger.With().Str("component", "admin_mentor_service").Logger(),
	}
}

func (s *adminMentorService) List(ctx context.Context) ([]dto.MentorResponse, error) {
	mentors, err := s.mentors.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewMentorResponseSlice(mentors), nil
}

func (s *adminMentorService) Create(ctx context.Context, payload dto.MentorCreateRequest, actor ActivityActor) (dto.MentorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MentorResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if _, err := s.mentors.GetByEmail(ctx, email); err == nil {
		return dto.MentorResponse{}, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.MentorResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.MentorResponse{}, err
	}

	mentor := models.Mentor{
		Name:          strings.TrimSpace(payload.Name),
		Email:         email,
		PasswordHash:  string(hash),
		ExpertiseArea: strings.TrimSpace(payload.ExpertiseArea),
	}
	if err := s.mentors.Create(ctx, &mentor); err != nil {
		return dto.MentorResponse{}, err
	}

	s.record(ctx, actor, "mentor_created", mentor.ID, map[string]interface{}{"email": mentor.Email})
	return dto.NewMentorResponse(mentor), nil
}

func (s *adminMentorService) Update(ctx context.Context, id uint, payload dto.MentorUpdateRequest, actor ActivityActor) (dto.MentorResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.MentorResponse{}, err
	}

	mentor, err := s.mentors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.MentorResponse{}, ErrMentorNotFound
		}
		return dto.MentorResponse{}, err
	}

	if payload.Name != nil {
		mentor.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		mentor.Email = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.ExpertiseArea != nil {
		mentor.ExpertiseArea = strings.TrimSpace(*payload.ExpertiseArea)
	}

	if err := s.mentors.Update(ctx, &mentor); err != nil {
		return dto.MentorResponse{}, err
	}

	s.record(ctx, actor, "mentor_updated", mentor.ID, nil)
	return dto.NewMentorResponse(mentor), nil
}

func (s *adminMentorService) Delete(ctx context.Context, id uint, actor ActivityActor) error {
	if err := s.mentors.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMentorNotFound
		}
		return err
	}

	s.record(ctx, actor, "mentor_deleted", id, nil)
	return nil
}

func (s *adminMentorService) record(ctx context.Context, actor ActivityActor, action string, mentorID uint, metadata map[string]interface{}) {
	if s.activity == nil {
		return
	}

	id := mentorID
	if _, err := s.activity.Record(ctx, ActivityEntry{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: "mentor",
		EntityID:   &id,
		Metadata:   metadata,
	}); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("failed to record mentor activity")
	}
}
