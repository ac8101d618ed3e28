package types

import (
	"time"

	"github.com/google/uuid"
)

// TripType is the resolved travel segment for a drafted itinerary.
type TripType string

const (
	TripTypeFIT       TripType = "FIT"
	TripTypeCorporate TripType = "Corporate"
)

// StepID identifies one question in the scripted drafting dialogue.
type StepID string

const (
	StepTripType  StepID = "tripType"
	StepThemes    StepID = "themes"
	StepDuration  StepID = "duration"
	StepGroupSize StepID = "groupSize"
	StepSeason    StepID = "season"
	StepWishes    StepID = "wishes"
)

// DialogueSteps is the fixed question order. Step indexes in a session point
// into this slice; an index past the end means the interview is complete.
var DialogueSteps = []StepID{
	StepTripType,
	StepThemes,
	StepDuration,
	StepGroupSize,
	StepSeason,
	StepWishes,
}

// AnswerSet holds the normalized per-step responses collected so far.
type AnswerSet struct {
	TripType  TripType `json:"trip_type,omitempty"`
	Themes    []string `json:"themes,omitempty"`
	Duration  string   `json:"duration,omitempty"`
	GroupSize string   `json:"group_size,omitempty"`
	Season    string   `json:"season,omitempty"`
	Wishes    string   `json:"wishes,omitempty"`
}

// EntryContext is the metadata carried by whichever page element opened the
// concierge. It flavours the opening message and is then discarded.
type EntryContext struct {
	Type     string `json:"type,omitempty"` // destination, experience, corporate, storyteller
	Name     string `json:"name,omitempty"`
	Greeting string `json:"greeting,omitempty"`
}

// DialoguePhase is the controller's position in the scripted flow.
type DialoguePhase string

const (
	PhaseIdle                 DialoguePhase = "idle"
	PhaseAskingStep           DialoguePhase = "asking_step"
	PhaseAwaitingConfirmation DialoguePhase = "awaiting_confirmation"
	PhaseRefinementRequested  DialoguePhase = "refinement_requested"
	PhaseHandedOff            DialoguePhase = "handed_off"
)

// ConciergeSession is the transient state of one drafting conversation.
// It lives only in the in-memory session store and is never persisted;
// the handoff lead draft is the only durable artifact of a conversation.
type ConciergeSession struct {
	ID      uuid.UUID     `json:"id"`
	Started bool          `json:"started"`
	Phase   DialoguePhase `json:"phase"`

	// StepIndex points into DialogueSteps and only ever moves forward.
	StepIndex int `json:"step_index"`

	AwaitingConfirmation bool `json:"awaiting_confirmation"`
	ExpectingRefinement  bool `json:"expecting_refinement"`

	Answers        AnswerSet    `json:"answers"`
	ItineraryDraft string       `json:"itinerary_draft,omitempty"`
	Summary        string       `json:"summary,omitempty"`
	Context        EntryContext `json:"context,omitempty"`

	// Generation guards paced deliveries: a reset bumps it and any timer
	// scheduled under an older generation is dropped at fire time.
	Generation uint64 `json:"-"`

	Transcript []ConciergeMessage `json:"transcript"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// CurrentStep returns the pending question, or false once all steps are done.
func (s *ConciergeSession) CurrentStep() (StepID, bool) {
	if s.StepIndex < 0 || s.StepIndex >= len(DialogueSteps) {
		return "", false
	}
	return DialogueSteps[s.StepIndex], true
}

// ConciergeRole distinguishes transcript senders.
type ConciergeRole string

const (
	RoleVisitor   ConciergeRole = "visitor"
	RoleConcierge ConciergeRole = "concierge"
)

// QuickReply is a pre-labeled button offered alongside a question. Clicking
// one submits Value through the same path as typed text.
type QuickReply struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ConciergeMessage is one transcript entry. Delay is the pacing offset the
// scheduler honours before the message becomes visible to the client stream.
type ConciergeMessage struct {
	ID           uuid.UUID     `json:"id"`
	Role         ConciergeRole `json:"role"`
	Content      string        `json:"content"`
	QuickReplies []QuickReply  `json:"quick_replies,omitempty"`
	Delay        time.Duration `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
}

// OpenSessionRequest starts a concierge conversation. TriggerSlug resolves an
// entry context from the content service; an inline Context wins if both are
// set. A SessionID reopens that session with the new context: its state is
// reset and pending paced deliveries from the old conversation are dropped.
type OpenSessionRequest struct {
	SessionID   *uuid.UUID    `json:"session_id,omitempty"`
	TriggerSlug string        `json:"trigger_slug,omitempty"`
	Context     *EntryContext `json:"context,omitempty"`
}

// SessionMessageRequest carries one visitor turn (typed text or a quick-reply value).
type SessionMessageRequest struct {
	Message string `json:"message"`
}

// SessionResponse is the snapshot returned after opening a session or
// submitting a turn. Replies are the assistant messages produced by that
// turn, in delivery order; the SSE stream delivers the same messages paced.
type SessionResponse struct {
	SessionID uuid.UUID          `json:"session_id"`
	Phase     DialoguePhase      `json:"phase"`
	Replies   []ConciergeMessage `json:"replies,omitempty"`
	HandedOff bool               `json:"handed_off"`
}
