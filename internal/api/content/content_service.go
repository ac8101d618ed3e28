package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service exposes concierge entry triggers with a read-through cache;
// trigger copy changes rarely and is read on every chat open.
type Service interface {
	ResolveTrigger(ctx context.Context, slug string) (*types.ConciergeTrigger, error)
	ListTriggers(ctx context.Context) ([]*types.ConciergeTrigger, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	cache  *cache.Cache
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *ServiceImpl) ResolveTrigger(ctx context.Context, slug string) (*types.ConciergeTrigger, error) {
	ctx, span := otel.Tracer("ContentService").Start(ctx, "ResolveTrigger", trace.WithAttributes(
		attribute.String("trigger.slug", slug),
	))
	defer span.End()

	cacheKey := "trigger:" + slug
	if cached, ok := s.cache.Get(cacheKey); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		span.SetStatus(codes.Ok, "Trigger resolved from cache")
		return cached.(*types.ConciergeTrigger), nil
	}

	trigger, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrTriggerNotFound) {
			span.SetStatus(codes.Error, "Trigger not found")
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Failed to resolve trigger", slog.String("slug", slug), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to resolve trigger")
		return nil, fmt.Errorf("error resolving trigger: %w", err)
	}

	s.cache.Set(cacheKey, trigger, cache.DefaultExpiration)
	span.SetStatus(codes.Ok, "Trigger resolved")
	return trigger, nil
}

func (s *ServiceImpl) ListTriggers(ctx context.Context) ([]*types.ConciergeTrigger, error) {
	ctx, span := otel.Tracer("ContentService").Start(ctx, "ListTriggers")
	defer span.End()

	if cached, ok := s.cache.Get("triggers:all"); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		span.SetStatus(codes.Ok, "Triggers listed from cache")
		return cached.([]*types.ConciergeTrigger), nil
	}

	triggers, err := s.repo.ListActive(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to list triggers")
		return nil, fmt.Errorf("error listing triggers: %w", err)
	}

	s.cache.Set("triggers:all", triggers, cache.DefaultExpiration)
	span.SetStatus(codes.Ok, "Triggers listed")
	return triggers, nil
}
