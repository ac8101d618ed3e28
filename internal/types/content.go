package types

import (
	"time"

	"github.com/google/uuid"
)

// ConciergeTrigger is a page element that can open the concierge with a
// pre-authored entry context (a destination card, an experience tile, the
// corporate page, a storyteller profile).
type ConciergeTrigger struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	ContextType string    `json:"context_type"` // destination, experience, corporate, storyteller
	DisplayName string    `json:"display_name"`
	Greeting    string    `json:"greeting,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntryContext converts a trigger row into the transient context a session
// carries for its opening message.
func (t *ConciergeTrigger) EntryContext() EntryContext {
	return EntryContext{
		Type:     t.ContextType,
		Name:     t.DisplayName,
		Greeting: t.Greeting,
	}
}
