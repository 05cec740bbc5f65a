package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

const dashboardRecentLogs = 5

// DashboardService produces role-aware aggregated views.
type DashboardService interface {
	Student(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error)
	Mentor(ctx context.Context, mentorID uint) (dto.MentorDashboardResponse, error)
}

type dashboardService struct {
	logs     repository.StudyLogRepository
	goals    repository.GoalRepository
	progress repository.ProgressRepository
	messages repository.MessageRepository
	feedback repository.FeedbackRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(logs repository.StudyLogRepository, goals repository.GoalRepository, progress repository.ProgressRepository, messages repository.MessageRepository, feedback repository.FeedbackRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		logs:     logs,
		goals:    goals,
		progress: progress,
		messages: messages,
		feedback: feedback,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Student(ctx context.Context, studentID uint) (dto.StudentDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:student:%d", studentID)

	var cached dto.StudentDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	logs, err := s.logs.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	records, err := s.progress.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	goals, err := s.goals.ListByStudent(ctx, studentID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	unread, err := s.messages.CountUnread(ctx, studentID, models.RoleStudent)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	recent := logs
	if len(recent) > dashboardRecentLogs {
		recent = recent[:dashboardRecentLogs]
	}

	response := dto.StudentDashboardResponse{
		RecentLogs:     dto.NewStudyLogResponseSlice(recent),
		HoursBySubject: hoursBySubject(logs),
		Progress:       dto.NewProgressResponseSlice(records),
		Goals:          dto.NewGoalResponseSlice(goals),
		UnreadMessages: unread,
	}

	s.writeCache(ctx, cacheKey, response)
	return response, nil
}

func (s *dashboardService) Mentor(ctx context.Context, mentorID uint) (dto.MentorDashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:mentor:%d", mentorID)

	var cached dto.MentorDashboardResponse
	if s.readCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	goals, err := s.goals.ListByMentor(ctx, mentorID)
	if err != nil {
		return dto.MentorDashboardResponse{}, err
	}

	feedback, err := s.feedback.ListByMentor(ctx, mentorID)
	if err != nil {
		return dto.MentorDashboardResponse{}, err
	}

	unread, err := s.messages.CountUnread(ctx, mentorID, models.RoleMentor)
	if err != nil {
		return dto.MentorDashboardResponse{}, err
	}

	met := 0
	for _, goal := range goals {
		if goal.IsMet {
			met++
		}
	}

	if len(feedback) > dashboardRecentLogs {
		feedback = feedback[:dashboardRecentLogs]
	}

	response := dto.MentorDashboardResponse{
		Goals:          dto.NewGoalResponseSlice(goals),
		GoalsMet:       met,
		GoalsOpen:      len(goals) - met,
		RecentFeedback: dto.NewFeedbackResponseSlice(feedback),
		UnreadMessages: unread,
	}

	s.writeCache(ctx, cacheKey, response)
	return response, nil
}

func (s *dashboardService) readCache(ctx context.Context, key string, target interface{}) bool {
	if s.cache == nil {
		return false
	}

	cached, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to read dashboard cache")
		}
		return false
	}

	if err := json.Unmarshal([]byte(cached), target); err != nil {
		return false
	}

	s.logger.Debug().Str("key", key).Msg("dashboard cache hit")
	return true
}

func (s *dashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to store dashboard cache")
	}
}

func hoursBySubject(logs []models.StudyLog) []dto.SubjectHours {
	totals := make(map[uint]*dto.SubjectHours)
	order := make([]uint, 0)

	for _, log := range logs {
		if entry, ok := totals[log.SubjectID]; ok {
			entry.TotalHours += log.DurationHours
			continue
		}
		totals[log.SubjectID] = &dto.SubjectHours{
			SubjectID:   log.SubjectID,
			SubjectName: log.Subject.Name,
			TotalHours:  log.DurationHours,
		}
		order = append(order, log.SubjectID)
	}

	out := make([]dto.SubjectHours, 0, len(order))
	for _, id := range order {
		out = append(out, *totals[id])
	}
	return out
}
