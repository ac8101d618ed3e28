package concierge

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

// MockConciergeService is a mock implementation of the Service interface
type MockConciergeService struct {
	mock.Mock
}

func (m *MockConciergeService) OpenSession(ctx context.Context, req types.OpenSessionRequest) (*types.SessionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SessionResponse), args.Error(1)
}

func (m *MockConciergeService) HandleMessage(ctx context.Context, sessionID uuid.UUID, message string) (*types.SessionResponse, error) {
	args := m.Called(ctx, sessionID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.SessionResponse), args.Error(1)
}

func (m *MockConciergeService) GetSession(ctx context.Context, sessionID uuid.UUID) (*types.ConciergeSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ConciergeSession), args.Error(1)
}

func (m *MockConciergeService) Subscribe(sessionID uuid.UUID) (<-chan types.ConciergeMessage, func(), error) {
	args := m.Called(sessionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan types.ConciergeMessage), args.Get(1).(func()), args.Error(2)
}

func testRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/concierge/sessions", h.OpenSession)
	r.Post("/concierge/sessions/{sessionID}/messages", h.PostMessage)
	r.Get("/concierge/sessions/{sessionID}", h.GetSession)
	return r
}

func TestHandlerOpenSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockConciergeService)
		handler := NewHandler(mockService, slog.Default())

		sessionID := uuid.New()
		mockService.On("OpenSession", mock.Anything, mock.MatchedBy(func(req types.OpenSessionRequest) bool {
			return req.TriggerSlug == "lapland-winter"
		})).Return(&types.SessionResponse{
			SessionID: sessionID,
			Phase:     types.PhaseAskingStep,
		}, nil).Once()

		body := bytes.NewBufferString(`{"trigger_slug":"lapland-winter"}`)
		req := httptest.NewRequest(http.MethodPost, "/concierge/sessions", body)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp types.SessionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, sessionID, resp.SessionID)
		mockService.AssertExpectations(t)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		handler := NewHandler(new(MockConciergeService), slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/concierge/sessions", bytes.NewBufferString(`{"trigger_slug":`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlerPostMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockConciergeService)
		handler := NewHandler(mockService, slog.Default())

		sessionID := uuid.New()
		mockService.On("HandleMessage", mock.Anything, sessionID, "Corporate").Return(&types.SessionResponse{
			SessionID: sessionID,
			Phase:     types.PhaseAskingStep,
		}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/concierge/sessions/"+sessionID.String()+"/messages",
			bytes.NewBufferString(`{"message":"Corporate"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("SessionNotFound", func(t *testing.T) {
		mockService := new(MockConciergeService)
		handler := NewHandler(mockService, slog.Default())

		sessionID := uuid.New()
		mockService.On("HandleMessage", mock.Anything, sessionID, "hello").Return(nil, ErrSessionNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/concierge/sessions/"+sessionID.String()+"/messages",
			bytes.NewBufferString(`{"message":"hello"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("InvalidSessionID", func(t *testing.T) {
		handler := NewHandler(new(MockConciergeService), slog.Default())

		req := httptest.NewRequest(http.MethodPost, "/concierge/sessions/not-a-uuid/messages",
			bytes.NewBufferString(`{"message":"hello"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandlerGetSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockConciergeService)
		handler := NewHandler(mockService, slog.Default())

		sessionID := uuid.New()
		mockService.On("GetSession", mock.Anything, sessionID).Return(&types.ConciergeSession{
			ID:    sessionID,
			Phase: types.PhaseAwaitingConfirmation,
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/concierge/sessions/"+sessionID.String(), nil)
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var session types.ConciergeSession
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
		assert.Equal(t, types.PhaseAwaitingConfirmation, session.Phase)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockService := new(MockConciergeService)
		handler := NewHandler(mockService, slog.Default())

		sessionID := uuid.New()
		mockService.On("GetSession", mock.Anything, sessionID).Return(nil, ErrSessionNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/concierge/sessions/"+sessionID.String(), nil)
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		mockService.AssertExpectations(t)
	})
}
