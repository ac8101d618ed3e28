package leads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulgosnell/liv-concierge/app/observability/metrics"
	"github.com/paulgosnell/liv-concierge/internal/types"
)

var ErrInvalidLead = errors.New("lead requires a name and an email")

var _ Service = (*ServiceImpl)(nil)

// Service is the business contract for sales-lead capture.
type Service interface {
	// Submit stores a completed contact-form submission.
	Submit(ctx context.Context, req types.CreateLeadRequest) (*types.Lead, error)

	// SaveDraft stores a concierge handoff draft awaiting contact details.
	SaveDraft(ctx context.Context, draft types.LeadDraft) (uuid.UUID, error)

	GetLead(ctx context.Context, leadID uuid.UUID) (*types.Lead, error)
	ListLeads(ctx context.Context, status *types.LeadStatus, limit, offset int) ([]*types.Lead, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

func (s *ServiceImpl) Submit(ctx context.Context, req types.CreateLeadRequest) (*types.Lead, error) {
	ctx, span := otel.Tracer("LeadService").Start(ctx, "Submit")
	defer span.End()

	l := s.logger.With(slog.String("method", "Submit"))

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" {
		span.SetStatus(codes.Error, "Missing required fields")
		return nil, ErrInvalidLead
	}

	lead := types.Lead{
		Name:        strings.TrimSpace(req.Name),
		Email:       strings.TrimSpace(req.Email),
		Phone:       strings.TrimSpace(req.Phone),
		TripType:    strings.TrimSpace(req.TripType),
		TravelDates: strings.TrimSpace(req.TravelDates),
		Details:     req.Details,
		Source:      strings.TrimSpace(req.Source),
		Status:      types.LeadStatusSubmitted,
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		l.ErrorContext(ctx, "Failed to store lead", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store lead")
		return nil, fmt.Errorf("error storing lead: %w", err)
	}

	if m := metrics.Get(); m != nil {
		m.LeadsCapturedTotal.Add(ctx, 1)
	}
	l.InfoContext(ctx, "Lead submitted", slog.String("lead_id", created.ID.String()))
	span.SetStatus(codes.Ok, "Lead submitted")
	return created, nil
}

// SaveDraft implements the concierge handoff bridge's recorder. Drafts have
// no contact details yet; the sales team sees them alongside submissions.
func (s *ServiceImpl) SaveDraft(ctx context.Context, draft types.LeadDraft) (uuid.UUID, error) {
	ctx, span := otel.Tracer("LeadService").Start(ctx, "SaveDraft")
	defer span.End()

	lead := types.Lead{
		TripType:    draft.TripType,
		TravelDates: draft.TravelDates,
		Details:     draft.Details,
		Source:      draft.Source,
		Status:      types.LeadStatusDraft,
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store lead draft")
		return uuid.Nil, fmt.Errorf("error storing lead draft: %w", err)
	}

	span.SetStatus(codes.Ok, "Lead draft stored")
	return created.ID, nil
}

func (s *ServiceImpl) GetLead(ctx context.Context, leadID uuid.UUID) (*types.Lead, error) {
	ctx, span := otel.Tracer("LeadService").Start(ctx, "GetLead", trace.WithAttributes(
		attribute.String("lead.id", leadID.String()),
	))
	defer span.End()

	lead, err := s.repo.GetByID(ctx, leadID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to fetch lead")
		if errors.Is(err, ErrLeadNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching lead: %w", err)
	}

	span.SetStatus(codes.Ok, "Lead fetched")
	return lead, nil
}

func (s *ServiceImpl) ListLeads(ctx context.Context, status *types.LeadStatus, limit, offset int) ([]*types.Lead, error) {
	ctx, span := otel.Tracer("LeadService").Start(ctx, "ListLeads")
	defer span.End()

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	leads, err := s.repo.List(ctx, status, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list leads")
		return nil, fmt.Errorf("error listing leads: %w", err)
	}

	span.SetStatus(codes.Ok, "Leads listed")
	return leads, nil
}
