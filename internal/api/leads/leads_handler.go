package leads

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/paulgosnell/liv-concierge/app/middleware"
	"github.com/paulgosnell/liv-concierge/internal/api"
	"github.com/paulgosnell/liv-concierge/internal/types"
)

type Handler struct {
	leadService Service
	logger      *slog.Logger
}

func NewHandler(leadService Service, logger *slog.Logger) *Handler {
	return &Handler{
		leadService: leadService,
		logger:      logger,
	}
}

// SubmitLead godoc
// @Summary      Submit Contact Form
// @Description  Stores a sales enquiry from the website contact form.
// @Tags         Leads
// @Accept       json
// @Produce      json
// @Param        request body types.CreateLeadRequest true "Lead Submission"
// @Success      201 {object} types.Lead "Lead Stored"
// @Failure      400 {object} api.Response "Invalid Request"
// @Router       /leads [post]
func (h *Handler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("LeadHandler").Start(r.Context(), "SubmitLead", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/leads"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SubmitLead"))

	var req types.CreateLeadRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("Invalid request format: %s", err.Error()))
		return
	}

	lead, err := h.leadService.Submit(ctx, req)
	if err != nil {
		if errors.Is(err, ErrInvalidLead) {
			span.SetStatus(codes.Error, "Missing required fields")
			api.ErrorResponse(w, r, http.StatusBadRequest, "A name and an email address are required")
			return
		}
		l.ErrorContext(ctx, "Failed to submit lead", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to submit lead")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to store enquiry")
		return
	}

	span.SetStatus(codes.Ok, "Lead submitted")
	api.WriteJSONResponse(w, r, http.StatusCreated, lead)
}

// ListLeads godoc
// @Summary      List Leads
// @Description  Returns stored leads for the sales team, newest first.
// @Tags         Admin
// @Produce      json
// @Param        status query string false "Filter by status (draft|submitted)"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200 {array} types.Lead "Leads"
// @Failure      401 {object} api.Response "Unauthorized"
// @Security     BearerAuth
// @Router       /admin/leads [get]
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("LeadHandler").Start(r.Context(), "ListLeads", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/leads"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "ListLeads"))
	if staff, ok := appMiddleware.GetStaffEmailFromContext(ctx); ok {
		l = l.With(slog.String("staff", staff))
	}

	var status *types.LeadStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := types.LeadStatus(raw)
		if s != types.LeadStatusDraft && s != types.LeadStatusSubmitted {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid status filter")
			return
		}
		status = &s
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	leads, err := h.leadService.ListLeads(ctx, status, limit, offset)
	if err != nil {
		l.ErrorContext(ctx, "Failed to list leads", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list leads")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to list leads")
		return
	}

	span.SetStatus(codes.Ok, "Leads listed")
	api.WriteJSONResponse(w, r, http.StatusOK, leads)
}

// GetLead godoc
// @Summary      Get Lead
// @Description  Returns a single lead by ID.
// @Tags         Admin
// @Produce      json
// @Param        leadID path string true "Lead ID"
// @Success      200 {object} types.Lead "Lead"
// @Failure      404 {object} api.Response "Lead Not Found"
// @Security     BearerAuth
// @Router       /admin/leads/{leadID} [get]
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("LeadHandler").Start(r.Context(), "GetLead", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/admin/leads/{leadID}"),
	))
	defer span.End()

	leadID, err := uuid.Parse(chi.URLParam(r, "leadID"))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid lead ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid lead ID format")
		return
	}

	lead, err := h.leadService.GetLead(ctx, leadID)
	if err != nil {
		if errors.Is(err, ErrLeadNotFound) {
			span.SetStatus(codes.Error, "Lead not found")
			api.ErrorResponse(w, r, http.StatusNotFound, "Lead not found")
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch lead")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch lead")
		return
	}

	span.SetStatus(codes.Ok, "Lead fetched")
	api.WriteJSONResponse(w, r, http.StatusOK, lead)
}
