package concierge

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

// Pacing holds the fixed delays used to stagger message delivery so the
// concierge reads like a person typing rather than a burst of text.
type Pacing struct {
	GreetingDelay    time.Duration
	StepDelay        time.Duration
	ParagraphStagger time.Duration
}

// Engine runs the scripted drafting dialogue over a single session. It is
// pure state transition logic: it mutates the session, returns the concierge
// replies (with pacing offsets) for the scheduler to deliver, and reports a
// handoff draft when the visitor confirms. It performs no I/O.
type Engine struct {
	pacing Pacing

	// pick chooses among the canned generic greetings. Injectable so tests
	// can pin the choice.
	pick func(n int) int
}

func NewEngine(pacing Pacing) *Engine {
	return &Engine{
		pacing: pacing,
		pick:   rand.Intn,
	}
}

// TurnResult is what one visitor turn (or session open) produced.
type TurnResult struct {
	Messages []types.ConciergeMessage

	// Handoff is non-nil exactly once, when the visitor confirms the draft.
	Handoff *HandoffPayload
}

// HandoffPayload carries everything the bridge needs to populate the
// contact form.
type HandoffPayload struct {
	TripType string
	Duration string
	Season   string
	Summary  string
	Draft    string
}

// Open enters the scripted dialogue: greeting first (when there is one),
// then the first question after the greeting delay.
func (e *Engine) Open(s *types.ConciergeSession) TurnResult {
	s.Started = true
	s.Phase = types.PhaseAskingStep
	s.StepIndex = 0

	var result TurnResult
	greeting := e.greetingFor(s.Context)
	firstDelay := time.Duration(0)
	if greeting != "" {
		result.Messages = append(result.Messages, newMessage(greeting, nil, 0))
		firstDelay = e.pacing.GreetingDelay
	}
	result.Messages = append(result.Messages, e.questionMessage(types.StepTripType, firstDelay))
	return result
}

// Handle advances the dialogue with one visitor turn. Empty or
// whitespace-only input is silently ignored: no state transition, the same
// question stays pending.
func (e *Engine) Handle(s *types.ConciergeSession, input string) TurnResult {
	input = strings.TrimSpace(input)
	if input == "" {
		return TurnResult{}
	}

	switch s.Phase {
	case types.PhaseIdle:
		return e.Open(s)
	case types.PhaseAskingStep:
		return e.handleStepAnswer(s, input)
	case types.PhaseAwaitingConfirmation:
		return e.handleConfirmation(s, input)
	case types.PhaseRefinementRequested:
		return e.handleRefinement(s, input)
	case types.PhaseHandedOff:
		return TurnResult{Messages: []types.ConciergeMessage{newMessage(handedOffNote, nil, 0)}}
	default:
		return TurnResult{}
	}
}

func (e *Engine) handleStepAnswer(s *types.ConciergeSession, input string) TurnResult {
	step, ok := s.CurrentStep()
	if !ok {
		// Index already past the last step; treat like a completed interview.
		return e.deliverDraft(s, draftIntroLine)
	}

	RecordAnswer(&s.Answers, step, input)
	s.StepIndex++

	if next, ok := s.CurrentStep(); ok {
		return TurnResult{Messages: []types.ConciergeMessage{e.questionMessage(next, e.pacing.StepDelay)}}
	}
	return e.deliverDraft(s, draftIntroLine)
}

// deliverDraft composes the itinerary and returns the three paragraphs as
// staggered messages followed by the confirmation prompt.
func (e *Engine) deliverDraft(s *types.ConciergeSession, intro string) TurnResult {
	draft := ComposeItinerary(s.Answers)
	s.ItineraryDraft = draft.Text()
	s.Summary = draft.Summary
	s.Phase = types.PhaseAwaitingConfirmation
	s.AwaitingConfirmation = true
	s.ExpectingRefinement = false

	var result TurnResult
	result.Messages = append(result.Messages, newMessage(intro, nil, e.pacing.StepDelay))
	for i, paragraph := range draft.Paragraphs {
		result.Messages = append(result.Messages, newMessage(paragraph, nil, e.pacing.StepDelay+time.Duration(i+1)*e.pacing.ParagraphStagger))
	}
	result.Messages = append(result.Messages, newMessage(confirmPrompt, confirmQuickReplies, e.pacing.StepDelay+4*e.pacing.ParagraphStagger))
	return result
}

func (e *Engine) handleConfirmation(s *types.ConciergeSession, input string) TurnResult {
	switch ClassifyConfirmation(input) {
	case IntentAffirm:
		s.Phase = types.PhaseHandedOff
		s.AwaitingConfirmation = false
		return TurnResult{
			Messages: []types.ConciergeMessage{newMessage(handoffMessage, nil, 0)},
			Handoff: &HandoffPayload{
				TripType: string(s.Answers.TripType),
				Duration: s.Answers.Duration,
				Season:   s.Answers.Season,
				Summary:  s.Summary,
				Draft:    s.ItineraryDraft,
			},
		}
	case IntentDecline:
		s.Phase = types.PhaseRefinementRequested
		s.AwaitingConfirmation = false
		s.ExpectingRefinement = true
		return TurnResult{Messages: []types.ConciergeMessage{newMessage(refinePrompt, nil, 0)}}
	default:
		// Unrecognized answer: clarify and stay put.
		return TurnResult{Messages: []types.ConciergeMessage{newMessage(clarifyPrompt, confirmQuickReplies, 0)}}
	}
}

func (e *Engine) handleRefinement(s *types.ConciergeSession, input string) TurnResult {
	RecordAnswer(&s.Answers, types.StepWishes, input)
	s.ExpectingRefinement = false
	return e.deliverDraft(s, redraftIntroLine)
}

func (e *Engine) greetingFor(ctx types.EntryContext) string {
	if ctx.Greeting != "" {
		return ctx.Greeting
	}
	if greeting := contextGreeting(ctx); greeting != "" {
		return greeting
	}
	return genericGreetings[e.pick(len(genericGreetings))]
}

func (e *Engine) questionMessage(step types.StepID, delay time.Duration) types.ConciergeMessage {
	q := stepQuestions[step]
	return newMessage(q.Prompt, q.QuickReplies, delay)
}

func newMessage(content string, quickReplies []types.QuickReply, delay time.Duration) types.ConciergeMessage {
	return types.ConciergeMessage{
		ID:           uuid.New(),
		Role:         types.RoleConcierge,
		Content:      content,
		QuickReplies: quickReplies,
		Delay:        delay,
		CreatedAt:    time.Now(),
	}
}
