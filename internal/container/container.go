package container

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/paulgosnell/liv-concierge/app/db"
	"github.com/paulgosnell/liv-concierge/config"
	"github.com/paulgosnell/liv-concierge/internal/api/assistant"
	"github.com/paulgosnell/liv-concierge/internal/api/concierge"
	"github.com/paulgosnell/liv-concierge/internal/api/content"
	"github.com/paulgosnell/liv-concierge/internal/api/leads"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *slog.Logger
	Pool   *pgxpool.Pool

	ConciergeHandler *concierge.Handler
	AssistantHandler *assistant.Handler
	LeadsHandler     *leads.Handler
	ContentHandler   *content.Handler
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// Initialize database
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	// Leads
	leadRepo := leads.NewPostgresLeadRepository(pool, logger)
	leadService := leads.NewService(leadRepo, logger)
	leadHandler := leads.NewHandler(leadService, logger)

	// Trigger content
	triggerRepo := content.NewPostgresTriggerRepository(pool, logger)
	contentService := content.NewService(triggerRepo, logger)
	contentHandler := content.NewHandler(contentService, logger)

	// Scripted concierge dialogue
	store := concierge.NewSessionStore(cfg.Concierge.SessionTTL)
	engine := concierge.NewEngine(concierge.Pacing{
		GreetingDelay:    cfg.Concierge.GreetingDelay,
		StepDelay:        cfg.Concierge.StepDelay,
		ParagraphStagger: cfg.Concierge.ParagraphStagger,
	})
	scheduler := concierge.NewScheduler(logger)
	conciergeService := concierge.NewService(store, engine, scheduler, leadService, contentService, logger)
	conciergeHandler := concierge.NewHandler(conciergeService, logger)

	// Freeform assistant. The scripted dialogue works without it, so a
	// missing API key only disables this mode.
	var assistantHandler *assistant.Handler
	aiClient, err := assistant.NewAIClient(ctx, cfg.Assistant.Model)
	if err != nil {
		logger.Warn("Assistant client unavailable, freeform chat disabled", slog.Any("error", err))
	} else {
		assistantService := assistant.NewService(aiClient, cfg.Assistant.Temperature, logger)
		assistantHandler = assistant.NewHandler(assistantService, logger)
	}

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Pool:             pool,
		ConciergeHandler: conciergeHandler,
		AssistantHandler: assistantHandler,
		LeadsHandler:     leadHandler,
		ContentHandler:   contentHandler,
	}, nil
}

// Close releases pooled resources.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
