package content

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulgosnell/liv-concierge/internal/api"
)

type Handler struct {
	contentService Service
	logger         *slog.Logger
}

func NewHandler(contentService Service, logger *slog.Logger) *Handler {
	return &Handler{
		contentService: contentService,
		logger:         logger,
	}
}

// GetTrigger godoc
// @Summary      Get Concierge Trigger
// @Description  Returns the entry context for a trigger slug.
// @Tags         Content
// @Produce      json
// @Param        slug path string true "Trigger Slug"
// @Success      200 {object} types.ConciergeTrigger "Trigger"
// @Failure      404 {object} api.Response "Trigger Not Found"
// @Router       /content/triggers/{slug} [get]
func (h *Handler) GetTrigger(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ContentHandler").Start(r.Context(), "GetTrigger", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/content/triggers/{slug}"),
	))
	defer span.End()

	slug := chi.URLParam(r, "slug")
	trigger, err := h.contentService.ResolveTrigger(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrTriggerNotFound) {
			span.SetStatus(codes.Error, "Trigger not found")
			api.ErrorResponse(w, r, http.StatusNotFound, "Trigger not found")
			return
		}
		h.logger.ErrorContext(ctx, "Failed to fetch trigger", slog.String("slug", slug), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch trigger")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch trigger")
		return
	}

	span.SetStatus(codes.Ok, "Trigger fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, trigger)
}

// ListTriggers godoc
// @Summary      List Concierge Triggers
// @Description  Returns all active entry triggers.
// @Tags         Content
// @Produce      json
// @Success      200 {array} types.ConciergeTrigger "Triggers"
// @Router       /content/triggers [get]
func (h *Handler) ListTriggers(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ContentHandler").Start(r.Context(), "ListTriggers", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/content/triggers"),
	))
	defer span.End()

	triggers, err := h.contentService.ListTriggers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list triggers", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list triggers")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list triggers")
		return
	}

	span.SetStatus(codes.Ok, "Triggers listed")
	api.WriteJSONResponse(w, r, http.StatusOK, triggers)
}
