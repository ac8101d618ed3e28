package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/paulgosnell/liv-concierge/app/observability/metrics"
	"github.com/paulgosnell/liv-concierge/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// ChatTurn is one prior exchange replayed to the model.
type ChatTurn struct {
	Role    string `json:"role"` // user or model
	Content string `json:"content"`
}

// ChatRequest is the freeform chat payload: entry context plus history plus
// the latest guest message.
type ChatRequest struct {
	Context types.EntryContext `json:"context,omitempty"`
	History []ChatTurn         `json:"history,omitempty"`
	Message string             `json:"message"`
}

// Service streams LLM replies for the freeform concierge mode.
type Service interface {
	StreamChat(ctx context.Context, req ChatRequest, chunks chan<- string) error
}

type ServiceImpl struct {
	logger      *slog.Logger
	ai          *AIClient
	temperature float32
}

func NewService(ai *AIClient, temperature float64, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		ai:          ai,
		temperature: float32(temperature),
	}
}

// StreamChat sends the guest message with replayed history and forwards
// text chunks onto the channel. The channel is closed when the stream ends.
func (s *ServiceImpl) StreamChat(ctx context.Context, req ChatRequest, chunks chan<- string) error {
	ctx, span := otel.Tracer("AssistantService").Start(ctx, "StreamChat")
	defer span.End()
	defer close(chunks)

	start := time.Now()
	l := s.logger.With(slog.String("method", "StreamChat"))

	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](s.temperature),
		SystemInstruction: genai.NewContentFromText(buildOpening(req.Context), genai.RoleUser),
	}

	history := make([]*genai.Content, 0, len(req.History))
	for _, turn := range req.History {
		var role genai.Role = genai.RoleUser
		if turn.Role == "model" || turn.Role == "assistant" {
			role = genai.RoleModel
		}
		history = append(history, genai.NewContentFromText(turn.Content, role))
	}

	stream, err := s.ai.StreamMessage(ctx, config, history, req.Message)
	if err != nil {
		l.ErrorContext(ctx, "Failed to start assistant stream", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to start stream")
		return fmt.Errorf("error starting assistant stream: %w", err)
	}

	for result, err := range stream {
		if err != nil {
			l.ErrorContext(ctx, "Assistant stream error", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Stream error")
			return fmt.Errorf("assistant stream error: %w", err)
		}
		if text := result.Text(); text != "" {
			select {
			case chunks <- text:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	if m := metrics.Get(); m != nil {
		m.AssistantRequestDuration.Record(ctx, time.Since(start).Seconds())
	}
	span.SetStatus(codes.Ok, "Stream completed")
	return nil
}
