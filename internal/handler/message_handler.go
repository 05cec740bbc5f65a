package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/edumentor/edumentor-go-api/internal/dto"
	"github.com/edumentor/edumentor-go-api/internal/service"
	"github.com/edumentor/edumentor-go-api/internal/utils"
)

// MessageHandler manages stored messages and the live SSE stream.
type MessageHandler struct {
	service    service.MessageService
	dispatcher service.NotificationService
	logger     zerolog.Logger
	keepAlive  time.Duration
}

// NewMessageHandler constructs a message handler.
func NewMessageHandler(service service.MessageService, dispatcher service.NotificationService, logger zerolog.Logger, keepAlive time.Duration) *MessageHandler {
	return &MessageHandler{
		service:    service,
		dispatcher: dispatcher,
		logger:     logger.With().Str("component", "message_handler").Logger(),
		keepAlive:  keepAlive,
	}
}

// Register wires message routes.
func (h *MessageHandler) Register(router fiber.Router) {
	router.Post("", h.send)
	router.Get("", h.inbox)
	router.Get("/sent", h.sent)
	router.Get("/stream", h.stream)
	router.Patch("/:id/read", h.markRead)
}

func (h *MessageHandler) send(c *fiber.Ctx) error {
	var payload dto.MessageSendRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	sender := service.Sender{ID: userIDFromContext(c), Role: userRoleFromContext(c)}
	message, err := h.service.Send(c.UserContext(), sender, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEmptyMessage):
			return utils.SendError(c, fiber.StatusBadRequest, "message content is empty")
		case errors.Is(err, service.ErrRecipientNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "recipient not found")
		default:
			h.logger.Error().Err(err).Msg("failed to send message")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to send message")
		}
	}

	return utils.SendCreated(c, "message sent", message)
}

func (h *MessageHandler) inbox(c *fiber.Ctx) error {
	messages, err := h.service.Inbox(c.UserContext(), userIDFromContext(c), userRoleFromContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list inbox")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list messages")
	}

	return utils.SendSuccess(c, "inbox", messages)
}

func (h *MessageHandler) sent(c *fiber.Ctx) error {
	messages, err := h.service.Sent(c.UserContext(), userIDFromContext(c), userRoleFromContext(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list sent messages")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list messages")
	}

	return utils.SendSuccess(c, "sent messages", messages)
}

func (h *MessageHandler) markRead(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid message id")
	}

	message, err := h.service.MarkRead(c.UserContext(), id, userIDFromContext(c), userRoleFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "message not found")
		default:
			h.logger.Error().Err(err).Msg("failed to mark message read")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update message")
		}
	}

	return utils.SendSuccess(c, "message updated", message)
}

func (h *MessageHandler) stream(c *fiber.Ctx) error {
	userID := userIDFromContext(c)
	role := userRoleFromContext(c)
	if userID == 0 || role == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)

	stream, cleanup := h.dispatcher.Subscribe(role, userID)

	keepAliveInterval := h.keepAlive
	if keepAliveInterval <= 0 {
		keepAliveInterval = 30 * time.Second
	}

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			cleanup()
			cancel()
		}()

		ticker := time.NewTicker(keepAliveInterval / 2)
		defer ticker.Stop()

		for {
			select {
			case message, ok := <-stream:
				if !ok {
					return
				}
				if err := writeMessageEvent(w, message); err != nil {
					h.logger.Debug().Err(err).Msg("failed to write message event")
					return
				}
			case <-ticker.C:
				if err := writeKeepAlive(w); err != nil {
					h.logger.Debug().Err(err).Msg("failed to write stream keepalive")
					return
				}
			case <-ctx.Done():
				return
			}
		}
	})

	return nil
}

func writeMessageEvent(w *bufio.Writer, message dto.MessageResponse) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "event: message\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}

func writeKeepAlive(w *bufio.Writer) error {
	if _, err := fmt.Fprintf(w, ": keep-alive %s\n\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return w.Flush()
}
