package concierge

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

// FormSink is the narrow surface the handoff bridge writes through, so the
// dialogue can be exercised headlessly. SetDatesIfEmpty must never overwrite
// a value the visitor already provided.
type FormSink interface {
	SetTripType(value string)
	SetDatesIfEmpty(value string)
	SetDetails(value string)
	SetSource(value string)
}

// PopulateForm copies a confirmed draft into the contact form. Best effort,
// no retries: the form is a convenience, not a transaction.
func PopulateForm(sink FormSink, payload HandoffPayload) {
	if payload.TripType != "" {
		sink.SetTripType(payload.TripType)
	}
	if composite := datesComposite(payload.Duration, payload.Season); composite != "" {
		sink.SetDatesIfEmpty(composite)
	}

	details := payload.Summary
	if payload.Draft != "" {
		details = details + "\n\n" + payload.Draft
	}
	sink.SetDetails(details)
	sink.SetSource(types.LeadSourceConcierge)
}

func datesComposite(duration, season string) string {
	parts := make([]string, 0, 2)
	if duration = strings.TrimSpace(duration); duration != "" {
		parts = append(parts, duration)
	}
	if season = strings.TrimSpace(season); season != "" {
		parts = append(parts, season)
	}
	return strings.Join(parts, ", ")
}

// LeadRecorder is the slice of the leads service the bridge needs. The leads
// package implements it; keeping the interface here avoids a dependency from
// the dialogue core onto persistence.
type LeadRecorder interface {
	SaveDraft(ctx context.Context, draft types.LeadDraft) (uuid.UUID, error)
}

// leadFormSink accumulates sink writes into a lead draft row.
type leadFormSink struct {
	draft types.LeadDraft
}

func (s *leadFormSink) SetTripType(value string) { s.draft.TripType = value }

func (s *leadFormSink) SetDatesIfEmpty(value string) {
	if s.draft.TravelDates == "" {
		s.draft.TravelDates = value
	}
}

func (s *leadFormSink) SetDetails(value string) { s.draft.Details = value }

func (s *leadFormSink) SetSource(value string) { s.draft.Source = value }
