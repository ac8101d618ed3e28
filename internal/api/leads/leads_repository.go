package leads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

var ErrLeadNotFound = errors.New("lead not found")

// DB is the pgx query surface the repository needs, satisfied by both
// *pgxpool.Pool and pgxmock.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Repository = (*PostgresLeadRepository)(nil)

// Repository defines the storage contract for sales leads.
type Repository interface {
	Create(ctx context.Context, lead types.Lead) (*types.Lead, error)
	GetByID(ctx context.Context, leadID uuid.UUID) (*types.Lead, error)
	List(ctx context.Context, status *types.LeadStatus, limit, offset int) ([]*types.Lead, error)
}

type PostgresLeadRepository struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresLeadRepository(db DB, logger *slog.Logger) *PostgresLeadRepository {
	return &PostgresLeadRepository{
		logger: logger,
		db:     db,
	}
}

const leadColumns = `id, name, email, phone, trip_type, travel_dates, details, source, status, created_at, updated_at`

func (r *PostgresLeadRepository) Create(ctx context.Context, lead types.Lead) (*types.Lead, error) {
	ctx, span := otel.Tracer("LeadRepository").Start(ctx, "Create", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "leads"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Create"))

	query := `
        INSERT INTO leads (name, email, phone, trip_type, travel_dates, details, source, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING ` + leadColumns

	row := r.db.QueryRow(ctx, query,
		lead.Name, lead.Email, lead.Phone, lead.TripType,
		lead.TravelDates, lead.Details, lead.Source, lead.Status,
	)

	created, err := scanLead(row)
	if err != nil {
		l.ErrorContext(ctx, "Failed to insert lead", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB insert failed")
		return nil, fmt.Errorf("database error creating lead: %w", err)
	}

	l.InfoContext(ctx, "Lead stored", slog.String("lead_id", created.ID.String()), slog.String("status", string(created.Status)))
	span.SetStatus(codes.Ok, "Lead created")
	return created, nil
}

func (r *PostgresLeadRepository) GetByID(ctx context.Context, leadID uuid.UUID) (*types.Lead, error) {
	ctx, span := otel.Tracer("LeadRepository").Start(ctx, "GetByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "leads"),
		attribute.String("db.lead.id", leadID.String()),
	))
	defer span.End()

	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	lead, err := scanLead(r.db.QueryRow(ctx, query, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Lead not found")
			return nil, ErrLeadNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching lead: %w", err)
	}

	span.SetStatus(codes.Ok, "Lead fetched")
	return lead, nil
}

func (r *PostgresLeadRepository) List(ctx context.Context, status *types.LeadStatus, limit, offset int) ([]*types.Lead, error) {
	ctx, span := otel.Tracer("LeadRepository").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "leads"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "List"))

	query := `SELECT ` + leadColumns + ` FROM leads`
	args := []any{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query leads", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error listing leads: %w", err)
	}
	defer rows.Close()

	var leads []*types.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			l.ErrorContext(ctx, "Failed to scan lead row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning lead: %w", err)
		}
		leads = append(leads, lead)
	}
	if err = rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading leads: %w", err)
	}

	span.SetStatus(codes.Ok, "Leads listed")
	return leads, nil
}

func scanLead(row pgx.Row) (*types.Lead, error) {
	var lead types.Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.TripType,
		&lead.TravelDates, &lead.Details, &lead.Source, &lead.Status,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}
