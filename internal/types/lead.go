package types

import (
	"time"

	"github.com/google/uuid"
)

// LeadSource is the constant stamped on leads that originate from the
// concierge handoff, as opposed to a plain contact-form submission.
const LeadSourceConcierge = "LIV Concierge"

// LeadStatus tracks whether a lead row is a concierge draft awaiting the
// visitor's contact details or a completed submission.
type LeadStatus string

const (
	LeadStatusDraft     LeadStatus = "draft"
	LeadStatusSubmitted LeadStatus = "submitted"
)

// Lead is a sales enquiry captured from the website contact form or drafted
// by the concierge handoff bridge.
type Lead struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	TripType    string     `json:"trip_type,omitempty"`
	TravelDates string     `json:"travel_dates,omitempty"`
	Details     string     `json:"details,omitempty"`
	Source      string     `json:"source,omitempty"`
	Status      LeadStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateLeadRequest is the contact-form submission body.
type CreateLeadRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	TripType    string `json:"trip_type,omitempty"`
	TravelDates string `json:"travel_dates,omitempty"`
	Details     string `json:"details,omitempty"`
	Source      string `json:"source,omitempty"`
}

// LeadDraft is the handoff payload assembled by the concierge form sink.
// TravelDates honours populate-if-empty: a value the visitor already typed
// is never overwritten by the duration/season composite.
type LeadDraft struct {
	TripType    string `json:"trip_type,omitempty"`
	TravelDates string `json:"travel_dates,omitempty"`
	Details     string `json:"details,omitempty"`
	Source      string `json:"source,omitempty"`
}
