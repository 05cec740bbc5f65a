package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

// AdminAnalyticsService exposes cross-student aggregates for the system view.
type AdminAnalyticsService interface {
	StudySummary(ctx context.Context) (dto.StudySummaryResponse, error)
}

type adminAnalyticsService struct {
	logs   repository.StudyLogRepository
	logger zerolog.Logger
}

// NewAdminAnalyticsService constructs the analytics service.
func NewAdminAnalyticsService(logs repository.StudyLogRepository, logger zerolog.Logger) AdminAnalyticsService {
	return &adminAnalyticsService{
		logs:   logs,
		logger: logger.With().Str("component", "admin_analytics_service").Logger(),
	}
}

func (s *adminAnalyticsService) StudySummary(ctx context.Context) (dto.StudySummaryResponse, error) {
	rows, err := s.logs.Summary(ctx)
	if err != nil {
		return dto.StudySummaryResponse{}, err
	}

	return dto.StudySummaryResponse{Rows: rows}, nil
}
