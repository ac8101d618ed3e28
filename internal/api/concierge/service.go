package concierge

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paulgosnell/liv-concierge/app/observability/metrics"
	"github.com/paulgosnell/liv-concierge/internal/types"
)

var ErrSessionNotFound = errors.New("concierge session not found")

var _ Service = (*ServiceImpl)(nil)

// Service is the business contract for the scripted drafting dialogue.
type Service interface {
	// OpenSession starts (or resets) a conversation and returns the opening
	// messages. Resetting drops any paced deliveries from the prior run.
	OpenSession(ctx context.Context, req types.OpenSessionRequest) (*types.SessionResponse, error)

	// HandleMessage advances the dialogue with one visitor turn.
	HandleMessage(ctx context.Context, sessionID uuid.UUID, message string) (*types.SessionResponse, error)

	// GetSession returns the current session snapshot.
	GetSession(ctx context.Context, sessionID uuid.UUID) (*types.ConciergeSession, error)

	// Subscribe attaches a listener for paced message deliveries. The cancel
	// func must be called when the listener goes away.
	Subscribe(sessionID uuid.UUID) (<-chan types.ConciergeMessage, func(), error)
}

// TriggerResolver is the slice of the content service the concierge needs to
// turn a trigger slug into an entry context.
type TriggerResolver interface {
	ResolveTrigger(ctx context.Context, slug string) (*types.ConciergeTrigger, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	store     *SessionStore
	engine    *Engine
	scheduler *Scheduler
	leads     LeadRecorder
	triggers  TriggerResolver

	// mu guards session mutation and the subscriber map. Request handlers
	// and fired delivery timers both touch sessions.
	mu          sync.Mutex
	subscribers map[uuid.UUID]map[int]chan types.ConciergeMessage
	nextSubID   int
}

func NewService(store *SessionStore, engine *Engine, scheduler *Scheduler, leads LeadRecorder, triggers TriggerResolver, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		store:       store,
		engine:      engine,
		scheduler:   scheduler,
		leads:       leads,
		triggers:    triggers,
		subscribers: make(map[uuid.UUID]map[int]chan types.ConciergeMessage),
	}
}

func (s *ServiceImpl) OpenSession(ctx context.Context, req types.OpenSessionRequest) (*types.SessionResponse, error) {
	ctx, span := otel.Tracer("ConciergeService").Start(ctx, "OpenSession")
	defer span.End()

	entry, err := s.resolveContext(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to resolve entry context")
		return nil, err
	}

	s.mu.Lock()
	session := s.prepareSessionLocked(req.SessionID, entry)
	result := s.engine.Open(session)
	s.store.Save(session)
	s.mu.Unlock()

	s.deliver(session.ID, session.Generation, result.Messages)

	if m := metrics.Get(); m != nil {
		m.SessionsStartedTotal.Add(ctx, 1)
	}
	s.logger.InfoContext(ctx, "Concierge session opened",
		slog.String("session_id", session.ID.String()),
		slog.String("context_type", entry.Type),
	)
	span.SetAttributes(attribute.String("session.id", session.ID.String()))
	span.SetStatus(codes.Ok, "Session opened")

	return &types.SessionResponse{
		SessionID: session.ID,
		Phase:     session.Phase,
		Replies:   result.Messages,
	}, nil
}

// prepareSessionLocked creates a fresh session, or resets an existing one in
// place. The generation bump is what invalidates in-flight paced deliveries
// from the previous conversation.
func (s *ServiceImpl) prepareSessionLocked(existing *uuid.UUID, entry types.EntryContext) *types.ConciergeSession {
	if existing != nil {
		if session, ok := s.store.Get(*existing); ok {
			gen := session.Generation + 1
			*session = types.ConciergeSession{
				ID:         session.ID,
				Generation: gen,
				Context:    entry,
				CreatedAt:  time.Now(),
			}
			return session
		}
	}
	return &types.ConciergeSession{
		ID:         uuid.New(),
		Generation: 1,
		Context:    entry,
		CreatedAt:  time.Now(),
	}
}

func (s *ServiceImpl) resolveContext(ctx context.Context, req types.OpenSessionRequest) (types.EntryContext, error) {
	if req.Context != nil {
		return *req.Context, nil
	}
	if req.TriggerSlug == "" || s.triggers == nil {
		return types.EntryContext{}, nil
	}
	trigger, err := s.triggers.ResolveTrigger(ctx, req.TriggerSlug)
	if err != nil {
		// A broken trigger should not keep the concierge from opening.
		s.logger.WarnContext(ctx, "Failed to resolve concierge trigger, opening without context",
			slog.String("slug", req.TriggerSlug),
			slog.Any("error", err),
		)
		return types.EntryContext{}, nil
	}
	return trigger.EntryContext(), nil
}

func (s *ServiceImpl) HandleMessage(ctx context.Context, sessionID uuid.UUID, message string) (*types.SessionResponse, error) {
	ctx, span := otel.Tracer("ConciergeService").Start(ctx, "HandleMessage", trace.WithAttributes(
		attribute.String("session.id", sessionID.String()),
	))
	defer span.End()

	s.mu.Lock()
	session, ok := s.store.Get(sessionID)
	if !ok {
		s.mu.Unlock()
		span.SetStatus(codes.Error, "Session not found")
		return nil, ErrSessionNotFound
	}

	wasAwaiting := session.Phase == types.PhaseAwaitingConfirmation
	if strings.TrimSpace(message) != "" {
		session.Transcript = append(session.Transcript, types.ConciergeMessage{
			ID:        uuid.New(),
			Role:      types.RoleVisitor,
			Content:   message,
			CreatedAt: time.Now(),
		})
	}

	result := s.engine.Handle(session, message)
	gen := session.Generation
	phase := session.Phase
	s.store.Save(session)
	s.mu.Unlock()

	s.deliver(sessionID, gen, result.Messages)

	if m := metrics.Get(); m != nil {
		if phase == types.PhaseAwaitingConfirmation && !wasAwaiting {
			m.DraftsComposedTotal.Add(ctx, 1)
		}
		if wasAwaiting && phase == types.PhaseRefinementRequested {
			m.RefinementsTotal.Add(ctx, 1)
		}
	}

	if result.Handoff != nil {
		s.recordHandoff(ctx, sessionID, *result.Handoff)
	}

	span.SetStatus(codes.Ok, "Turn handled")
	return &types.SessionResponse{
		SessionID: sessionID,
		Phase:     phase,
		Replies:   result.Messages,
		HandedOff: phase == types.PhaseHandedOff,
	}, nil
}

// recordHandoff populates the form sink from the confirmed draft and stores
// the resulting lead draft. Best effort: a storage failure is logged, not
// surfaced, because the visitor already has the draft on screen.
func (s *ServiceImpl) recordHandoff(ctx context.Context, sessionID uuid.UUID, payload HandoffPayload) {
	sink := &leadFormSink{}
	PopulateForm(sink, payload)

	if s.leads == nil {
		return
	}
	leadID, err := s.leads.SaveDraft(ctx, sink.draft)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to store handoff lead draft",
			slog.String("session_id", sessionID.String()),
			slog.Any("error", err),
		)
		return
	}

	if m := metrics.Get(); m != nil {
		m.HandoffsTotal.Add(ctx, 1)
	}
	s.logger.InfoContext(ctx, "Concierge draft handed off",
		slog.String("session_id", sessionID.String()),
		slog.String("lead_id", leadID.String()),
	)
}

func (s *ServiceImpl) GetSession(ctx context.Context, sessionID uuid.UUID) (*types.ConciergeSession, error) {
	_, span := otel.Tracer("ConciergeService").Start(ctx, "GetSession", trace.WithAttributes(
		attribute.String("session.id", sessionID.String()),
	))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.store.Get(sessionID)
	if !ok {
		span.SetStatus(codes.Error, "Session not found")
		return nil, ErrSessionNotFound
	}

	// Copy under lock so callers can serialize without racing deliveries.
	snapshot := *session
	snapshot.Transcript = append([]types.ConciergeMessage(nil), session.Transcript...)
	span.SetStatus(codes.Ok, "Session fetched")
	return &snapshot, nil
}

func (s *ServiceImpl) Subscribe(sessionID uuid.UUID) (<-chan types.ConciergeMessage, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Get(sessionID); !ok {
		return nil, nil, ErrSessionNotFound
	}

	ch := make(chan types.ConciergeMessage, 16)
	if s.subscribers[sessionID] == nil {
		s.subscribers[sessionID] = make(map[int]chan types.ConciergeMessage)
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[sessionID][id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if subs, ok := s.subscribers[sessionID]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				close(ch)
			}
			if len(subs) == 0 {
				delete(s.subscribers, sessionID)
			}
		}
	}
	return ch, cancel, nil
}

// deliver schedules each reply at its pacing offset. A fired delivery checks
// the session generation under the same lock that appends, so a reset can
// never interleave between the check and the transcript write, then fans out
// to stream subscribers.
func (s *ServiceImpl) deliver(sessionID uuid.UUID, gen uint64, messages []types.ConciergeMessage) {
	for _, msg := range messages {
		msg := msg
		s.scheduler.Schedule(msg.Delay, gen, func(gen uint64) bool {
			s.mu.Lock()
			session, ok := s.store.Get(sessionID)
			if !ok || session.Generation != gen {
				s.mu.Unlock()
				return false
			}
			session.Transcript = append(session.Transcript, msg)
			s.store.Save(session)
			subs := make([]chan types.ConciergeMessage, 0, len(s.subscribers[sessionID]))
			for _, ch := range s.subscribers[sessionID] {
				subs = append(subs, ch)
			}
			s.mu.Unlock()

			for _, ch := range subs {
				select {
				case ch <- msg:
				default:
					// Slow consumer; the snapshot endpoint still has the message.
				}
			}
			return true
		})
	}
}
