package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/models"
	"github.com/edumentor/edumentor-go-api/internal/observability"
	"github.com/edumentor/edumentor-go-api/internal/repository"
)

const messageStreamBufferSize = 16

// NotificationService writes system-authored messages and fans message events
// out to live subscribers. The goal-completion path is best-effort: a write
// failure is logged and dropped, never surfaced to the triggering request.
type NotificationService interface {
	GoalCompletionNotifier
	BroadcastMessage(ctx context.Context, message dto.MessageResponse)
	Subscribe(role string, userID uint) (<-chan dto.MessageResponse, func())
	Start(ctx context.Context)
}

type notificationService struct {
	messages    repository.MessageRepository
	redis       *redis.Client
	redisStream string
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	tracer      trace.Tracer
	broker      *messageBroker
	nodeID      string
}

type messageEvent struct {
	Source  string              `json:"source"`
	Message dto.MessageResponse `json:"message"`
	SentAt  time.Time           `json:"sent_at"`
}

type messageBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan dto.MessageResponse]struct{}
}

// NewNotificationService constructs the dispatcher.
func NewNotificationService(messages repository.MessageRepository, redisClient *redis.Client, channelBase string, natsConn *nats.Conn, logger zerolog.Logger) NotificationService {
	stream := ""
	subject := ""
	if channelBase != "" {
		stream = channelBase + ":messages"
		subject = strings.ReplaceAll(channelBase, ":", ".") + ".messages"
	}

	return &notificationService{
		messages:    messages,
		redis:       redisClient,
		redisStream: stream,
		nats:        natsConn,
		natsSubject: subject,
		logger:      logger.With().Str("component", "notification_service").Logger(),
		tracer:      otel.Tracer("github.com/edumentor/edumentor-go-api/internal/service/notification"),
		broker: &messageBroker{
			subscribers: make(map[string]map[chan dto.MessageResponse]struct{}),
		},
		nodeID: uuid.NewString(),
	}
}

func (s *notificationService) Start(ctx context.Context) {
	if s.redis != nil && s.redisStream != "" {
		go s.consumeRedis(ctx)
	}
	if s.nats != nil && s.natsSubject != "" {
		go s.consumeNATS(ctx)
	}
}

// NotifyGoalCompleted writes one congratulation message authored as the
// goal's mentor and addressed to the student. Exactly one call happens per
// latch transition; the progress engine's idempotence enforces that, not this
// dispatcher.
func (s *notificationService) NotifyGoalCompleted(ctx context.Context, completion GoalCompletion) {
	attrs := []attribute.KeyValue{
		attribute.Int("goal.id", int(completion.GoalID)),
		attribute.Int("goal.student_id", int(completion.StudentID)),
	}
	spanCtx, span := s.tracer.Start(ctx, "notifications.goal_completed", trace.WithAttributes(attrs...))
	defer span.End()

	content := fmt.Sprintf(
		"Congratulations %s! You have reached your study goal for %s. Keep up the great work.",
		completion.StudentName, completion.SubjectName,
	)

	message := models.Message{
		SenderID:      completion.MentorID,
		SenderRole:    models.RoleMentor,
		RecipientID:   completion.StudentID,
		RecipientRole: models.RoleStudent,
		Content:       content,
	}

	if err := s.messages.Create(spanCtx, &message); err != nil {
		span.RecordError(err)
		s.logger.Warn().Err(err).
			Uint("goal_id", completion.GoalID).
			Uint("student_id", completion.StudentID).
			Msg("goal completion message dropped")
		return
	}

	observability.NotificationsPublishedTotal().WithLabelValues("goal_completion").Inc()
	s.BroadcastMessage(spanCtx, dto.NewMessageResponse(message))
}

// BroadcastMessage delivers an already persisted message to live subscribers
// on this node and publishes it for other nodes.
func (s *notificationService) BroadcastMessage(ctx context.Context, message dto.MessageResponse) {
	s.broker.broadcast(subscriberKey(message.RecipientRole, message.RecipientID), message)

	if err := s.publish(ctx, message); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish message event to broker")
	}
}

func (s *notificationService) Subscribe(role string, userID uint) (<-chan dto.MessageResponse, func()) {
	channel := make(chan dto.MessageResponse, messageStreamBufferSize)
	key := subscriberKey(role, userID)

	s.broker.subscribe(key, channel)
	observability.StreamClientsActive().Inc()

	cleanup := func() {
		s.broker.unsubscribe(key, channel)
		observability.StreamClientsActive().Dec()
	}

	return channel, cleanup
}

func (s *notificationService) publish(ctx context.Context, message dto.MessageResponse) error {
	event := messageEvent{
		Source:  s.nodeID,
		Message: message,
		SentAt:  time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if s.redis != nil && s.redisStream != "" {
		if err := s.redis.Publish(ctx, s.redisStream, payload).Err(); err != nil {
			return err
		}
	}

	if s.nats != nil && s.natsSubject != "" {
		if err := s.nats.Publish(s.natsSubject, payload); err != nil {
			return err
		}
	}

	return nil
}

func (s *notificationService) consumeRedis(ctx context.Context) {
	pubsub := s.redis.Subscribe(ctx, s.redisStream)
	defer func() { _ = pubsub.Close() }()

	for {
		msg, err := pubsub.ReceiveMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			s.logger.Error().Err(err).Msg("message redis subscription closed")
			return
		}
		s.handleEvent([]byte(msg.Payload))
	}
}

func (s *notificationService) consumeNATS(ctx context.Context) {
	sub, err := s.nats.QueueSubscribe(s.natsSubject, "edumentor-messages", func(msg *nats.Msg) {
		s.handleEvent(msg.Data)
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to subscribe to nats message subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drain message nats subscription")
		}
	}()
}

func (s *notificationService) handleEvent(payload []byte) {
	var event messageEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		s.logger.Warn().Err(err).Msg("invalid message event payload")
		return
	}

	if event.Source == s.nodeID {
		return
	}

	message := event.Message
	s.broker.broadcast(subscriberKey(message.RecipientRole, message.RecipientID), message)
}

func subscriberKey(role string, userID uint) string {
	return fmt.Sprintf("%s:%d", role, userID)
}

func (b *messageBroker) subscribe(key string, ch chan dto.MessageResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[key]; !exists {
		b.subscribers[key] = make(map[chan dto.MessageResponse]struct{})
	}
	b.subscribers[key][ch] = struct{}{}
}

func (b *messageBroker) unsubscribe(key string, ch chan dto.MessageResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subscribers, ok := b.subscribers[key]; ok {
		delete(subscribers, ch)
		close(ch)
		if len(subscribers) == 0 {
			delete(b.subscribers, key)
		}
	}
}

func (b *messageBroker) broadcast(key string, message dto.MessageResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers[key] {
		select {
		case ch <- message:
		default:
		}
	}
}
