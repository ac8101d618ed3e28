package concierge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulgosnell/liv-concierge/internal/api"
	"github.com/paulgosnell/liv-concierge/internal/types"
)

type Handler struct {
	conciergeService Service
	logger           *slog.Logger
}

func NewHandler(conciergeService Service, logger *slog.Logger) *Handler {
	return &Handler{
		conciergeService: conciergeService,
		logger:           logger,
	}
}

// OpenSession godoc
// @Summary      Open Concierge Session
// @Description  Starts (or resets) a scripted itinerary-drafting conversation.
// @Tags         Concierge
// @Accept       json
// @Produce      json
// @Param        request body types.OpenSessionRequest true "Entry context or trigger slug"
// @Success      201 {object} types.SessionResponse "Session Opened"
// @Failure      400 {object} api.Response "Invalid Request"
// @Router       /concierge/sessions [post]
func (h *Handler) OpenSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ConciergeHandler").Start(r.Context(), "OpenSession", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/concierge/sessions"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "OpenSession"))

	var req types.OpenSessionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid request format: %s", err.Error()))
		return
	}

	resp, err := h.conciergeService.OpenSession(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to open concierge session", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to open session")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to open concierge session")
		return
	}

	span.SetStatus(codes.Ok, "Session opened")
	api.WriteJSONResponse(w, r, http.StatusCreated, resp)
}

// PostMessage godoc
// @Summary      Send Concierge Message
// @Description  Submits one visitor turn (typed text or a quick-reply value).
// @Tags         Concierge
// @Accept       json
// @Produce      json
// @Param        sessionID path string true "Session ID"
// @Param        request body types.SessionMessageRequest true "Visitor Message"
// @Success      200 {object} types.SessionResponse "Turn Handled"
// @Failure      400 {object} api.Response "Invalid Request"
// @Failure      404 {object} api.Response "Session Not Found"
// @Router       /concierge/sessions/{sessionID}/messages [post]
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ConciergeHandler").Start(r.Context(), "PostMessage", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/concierge/sessions/{sessionID}/messages"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PostMessage"))

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid session ID format", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid session ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	var req types.SessionMessageRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid request format: %s", err.Error()))
		return
	}

	resp, err := h.conciergeService.HandleMessage(ctx, sessionID, req.Message)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			span.SetStatus(codes.Error, "Session not found")
			api.ErrorResponse(w, r, http.StatusNotFound, "Concierge session not found")
			return
		}
		l.ErrorContext(ctx, "Failed to handle concierge message", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to handle message")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to handle message")
		return
	}

	span.SetStatus(codes.Ok, "Turn handled")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

// GetSession godoc
// @Summary      Get Concierge Session
// @Description  Returns the session snapshot including the delivered transcript.
// @Tags         Concierge
// @Produce      json
// @Param        sessionID path string true "Session ID"
// @Success      200 {object} types.ConciergeSession "Session Snapshot"
// @Failure      404 {object} api.Response "Session Not Found"
// @Router       /concierge/sessions/{sessionID} [get]
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ConciergeHandler").Start(r.Context(), "GetSession", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/concierge/sessions/{sessionID}"),
	))
	defer span.End()

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid session ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	session, err := h.conciergeService.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			span.SetStatus(codes.Error, "Session not found")
			api.ErrorResponse(w, r, http.StatusNotFound, "Concierge session not found")
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch session")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch session")
		return
	}

	span.SetStatus(codes.Ok, "Session fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, session)
}

// StreamSession delivers paced concierge messages over SSE in composition
// order. Each event carries the message JSON; event IDs are message IDs.
func (h *Handler) StreamSession(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Streaming not supported")
		return
	}

	ctx := r.Context()
	l := h.logger.With(slog.String("handler", "StreamSession"))

	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeSSEError(w, flusher, "Invalid session ID format")
		return
	}

	ch, cancel, err := h.conciergeService.Subscribe(sessionID)
	if err != nil {
		h.writeSSEError(w, flusher, "Concierge session not found")
		return
	}
	defer cancel()

	l.InfoContext(ctx, "Concierge stream attached", slog.String("session_id", sessionID.String()))

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(msg)
			if err != nil {
				l.ErrorContext(ctx, "Failed to marshal stream message", slog.Any("error", err))
				continue
			}
			fmt.Fprintf(w, "id: %s\n", msg.ID)
			fmt.Fprintf(w, "event: message\n")
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()

		case <-ctx.Done():
			l.InfoContext(ctx, "Concierge stream client disconnected", slog.String("session_id", sessionID.String()))
			return
		}
	}
}

func (h *Handler) writeSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	payload, _ := json.Marshal(map[string]string{"error": errorMsg})
	fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
	flusher.Flush()
}
