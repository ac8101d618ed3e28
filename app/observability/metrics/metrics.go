package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	SessionsStartedTotal     metric.Int64Counter
	DraftsComposedTotal      metric.Int64Counter
	RefinementsTotal         metric.Int64Counter
	HandoffsTotal            metric.Int64Counter
	LeadsCapturedTotal       metric.Int64Counter
	StaleDeliveriesDropped   metric.Int64Counter
	AssistantRequestDuration metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments exactly once,
// using the meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("liv-concierge")
		var err error
		m := &AppMetrics{}

		m.SessionsStartedTotal, err = meter.Int64Counter(
			"concierge_sessions_started_total",
			metric.WithDescription("Total number of concierge sessions opened"),
			metric.WithUnit("{session}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create concierge_sessions_started_total: %v", err)
		}

		m.DraftsComposedTotal, err = meter.Int64Counter(
			"concierge_drafts_composed_total",
			metric.WithDescription("Total number of itinerary drafts composed"),
			metric.WithUnit("{draft}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create concierge_drafts_composed_total: %v", err)
		}

		m.RefinementsTotal, err = meter.Int64Counter(
			"concierge_refinements_total",
			metric.WithDescription("Total number of draft refinement passes"),
			metric.WithUnit("{refinement}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create concierge_refinements_total: %v", err)
		}

		m.HandoffsTotal, err = meter.Int64Counter(
			"concierge_handoffs_total",
			metric.WithDescription("Total number of drafts handed off to the contact form"),
			metric.WithUnit("{handoff}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create concierge_handoffs_total: %v", err)
		}

		m.LeadsCapturedTotal, err = meter.Int64Counter(
			"leads_captured_total",
			metric.WithDescription("Total number of leads stored"),
			metric.WithUnit("{lead}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create leads_captured_total: %v", err)
		}

		m.StaleDeliveriesDropped, err = meter.Int64Counter(
			"concierge_stale_deliveries_dropped_total",
			metric.WithDescription("Paced messages dropped because their session generation was superseded"),
			metric.WithUnit("{message}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create concierge_stale_deliveries_dropped_total: %v", err)
		}

		m.AssistantRequestDuration, err = meter.Float64Histogram(
			"assistant_request_duration_seconds",
			metric.WithDescription("Duration of LLM assistant requests in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create assistant_request_duration_seconds: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the initialized metrics, or nil if InitAppMetrics never ran.
// Callers treat nil as "metrics disabled" (tests, headless tooling).
func Get() *AppMetrics {
	return appMetrics
}
