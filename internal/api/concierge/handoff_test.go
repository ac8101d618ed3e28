package concierge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

// recordingSink captures sink writes for assertions.
type recordingSink struct {
	tripType string
	dates    string
	details  string
	source   string
}

func (s *recordingSink) SetTripType(value string) { s.tripType = value }
func (s *recordingSink) SetDatesIfEmpty(value string) {
	if s.dates == "" {
		s.dates = value
	}
}
func (s *recordingSink) SetDetails(value string) { s.details = value }
func (s *recordingSink) SetSource(value string)  { s.source = value }

func TestPopulateForm(t *testing.T) {
	payload := HandoffPayload{
		TripType: "Corporate",
		Duration: "5 nights",
		Season:   "June",
		Summary:  "Trip Type: Corporate & Incentives",
		Draft:    "I'm envisioning a 5 nights composition.",
	}

	t.Run("copies the confirmed draft into the form", func(t *testing.T) {
		sink := &recordingSink{}
		PopulateForm(sink, payload)

		assert.Equal(t, "Corporate", sink.tripType)
		assert.Equal(t, "5 nights, June", sink.dates)
		assert.Equal(t, "Trip Type: Corporate & Incentives\n\nI'm envisioning a 5 nights composition.", sink.details)
		assert.Equal(t, types.LeadSourceConcierge, sink.source)
	})

	t.Run("never overwrites dates the visitor already typed", func(t *testing.T) {
		sink := &recordingSink{dates: "12-19 June 2026"}
		PopulateForm(sink, payload)
		assert.Equal(t, "12-19 June 2026", sink.dates)
	})

	t.Run("partial dates composite", func(t *testing.T) {
		sink := &recordingSink{}
		PopulateForm(sink, HandoffPayload{Duration: "5 nights", Summary: "s"})
		assert.Equal(t, "5 nights", sink.dates)

		sink = &recordingSink{}
		PopulateForm(sink, HandoffPayload{Season: "June", Summary: "s"})
		assert.Equal(t, "June", sink.dates)
	})

	t.Run("missing pieces leave the form untouched", func(t *testing.T) {
		sink := &recordingSink{}
		PopulateForm(sink, HandoffPayload{Summary: "just a summary"})

		assert.Empty(t, sink.tripType)
		assert.Empty(t, sink.dates)
		assert.Equal(t, "just a summary", sink.details)
		assert.Equal(t, types.LeadSourceConcierge, sink.source)
	})

	t.Run("lead sink accumulates a draft row", func(t *testing.T) {
		sink := &leadFormSink{}
		PopulateForm(sink, payload)

		assert.Equal(t, "Corporate", sink.draft.TripType)
		assert.Equal(t, "5 nights, June", sink.draft.TravelDates)
		assert.Equal(t, types.LeadSourceConcierge, sink.draft.Source)
		assert.Contains(t, sink.draft.Details, payload.Draft)
	})
}
