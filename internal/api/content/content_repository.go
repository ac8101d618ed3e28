package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

var ErrTriggerNotFound = errors.New("concierge trigger not found")

// DB is the pgx query surface the repository needs, satisfied by both
// *pgxpool.Pool and pgxmock.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ Repository = (*PostgresTriggerRepository)(nil)

// Repository defines storage access for concierge entry triggers.
type Repository interface {
	GetBySlug(ctx context.Context, slug string) (*types.ConciergeTrigger, error)
	ListActive(ctx context.Context) ([]*types.ConciergeTrigger, error)
}

type PostgresTriggerRepository struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresTriggerRepository(db DB, logger *slog.Logger) *PostgresTriggerRepository {
	return &PostgresTriggerRepository{
		logger: logger,
		db:     db,
	}
}

const triggerColumns = `id, slug, context_type, display_name, greeting, active, created_at, updated_at`

func (r *PostgresTriggerRepository) GetBySlug(ctx context.Context, slug string) (*types.ConciergeTrigger, error) {
	ctx, span := otel.Tracer("TriggerRepository").Start(ctx, "GetBySlug", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "concierge_triggers"),
		attribute.String("trigger.slug", slug),
	))
	defer span.End()

	query := `SELECT ` + triggerColumns + ` FROM concierge_triggers WHERE slug = $1 AND active = TRUE`

	var t types.ConciergeTrigger
	err := r.db.QueryRow(ctx, query, slug).Scan(
		&t.ID, &t.Slug, &t.ContextType, &t.DisplayName, &t.Greeting,
		&t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Trigger not found")
			return nil, ErrTriggerNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query trigger", slog.String("slug", slug), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching trigger: %w", err)
	}

	span.SetStatus(codes.Ok, "Trigger fetched")
	return &t, nil
}

func (r *PostgresTriggerRepository) ListActive(ctx context.Context) ([]*types.ConciergeTrigger, error) {
	ctx, span := otel.Tracer("TriggerRepository").Start(ctx, "ListActive", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "concierge_triggers"),
	))
	defer span.End()

	query := `SELECT ` + triggerColumns + ` FROM concierge_triggers WHERE active = TRUE ORDER BY slug`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error listing triggers: %w", err)
	}
	defer rows.Close()

	var triggers []*types.ConciergeTrigger
	for rows.Next() {
		var t types.ConciergeTrigger
		err := rows.Scan(
			&t.ID, &t.Slug, &t.ContextType, &t.DisplayName, &t.Greeting,
			&t.Active, &t.CreatedAt, &t.UpdatedAt,
		)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning trigger: %w", err)
		}
		triggers = append(triggers, &t)
	}
	if err = rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading triggers: %w", err)
	}

	span.SetStatus(codes.Ok, "Triggers listed")
	return triggers, nil
}
