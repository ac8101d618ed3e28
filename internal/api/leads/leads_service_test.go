package leads

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

// MockLeadRepo is a mock implementation of the Repository interface
type MockLeadRepo struct {
	mock.Mock
}

func (m *MockLeadRepo) Create(ctx context.Context, lead types.Lead) (*types.Lead, error) {
	args := m.Called(ctx, lead)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Lead), args.Error(1)
}

func (m *MockLeadRepo) GetByID(ctx context.Context, leadID uuid.UUID) (*types.Lead, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Lead), args.Error(1)
}

func (m *MockLeadRepo) List(ctx context.Context, status *types.LeadStatus, limit, offset int) ([]*types.Lead, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*types.Lead), args.Error(1)
}

func TestSubmit(t *testing.T) {
	mockRepo := new(MockLeadRepo)
	logger := slog.Default()
	service := NewService(mockRepo, logger)

	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()
		stored := &types.Lead{
			ID:     uuid.New(),
			Name:   "Astrid Berg",
			Email:  "astrid@example.com",
			Status: types.LeadStatusSubmitted,
		}

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(lead types.Lead) bool {
			return lead.Name == "Astrid Berg" && lead.Status == types.LeadStatusSubmitted
		})).Return(stored, nil).Once()

		lead, err := service.Submit(ctx, types.CreateLeadRequest{
			Name:  "  Astrid Berg  ",
			Email: "astrid@example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, stored, lead)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MissingName", func(t *testing.T) {
		_, err := service.Submit(context.Background(), types.CreateLeadRequest{Email: "astrid@example.com"})
		assert.ErrorIs(t, err, ErrInvalidLead)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		_, err := service.Submit(context.Background(), types.CreateLeadRequest{Name: "Astrid Berg"})
		assert.ErrorIs(t, err, ErrInvalidLead)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		ctx := context.Background()
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		_, err := service.Submit(ctx, types.CreateLeadRequest{Name: "Astrid", Email: "a@b.se"})
		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestSaveDraft(t *testing.T) {
	mockRepo := new(MockLeadRepo)
	logger := slog.Default()
	service := NewService(mockRepo, logger)

	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()
		stored := &types.Lead{ID: uuid.New(), Status: types.LeadStatusDraft}

		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(lead types.Lead) bool {
			return lead.Status == types.LeadStatusDraft &&
				lead.Name == "" &&
				lead.Source == types.LeadSourceConcierge
		})).Return(stored, nil).Once()

		id, err := service.SaveDraft(ctx, types.LeadDraft{
			TripType:    "Corporate",
			TravelDates: "5 nights, June",
			Details:     "Trip Type: Corporate & Incentives",
			Source:      types.LeadSourceConcierge,
		})

		assert.NoError(t, err)
		assert.Equal(t, stored.ID, id)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepositoryError", func(t *testing.T) {
		ctx := context.Background()
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

		id, err := service.SaveDraft(ctx, types.LeadDraft{})
		assert.Error(t, err)
		assert.Equal(t, uuid.Nil, id)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetLead(t *testing.T) {
	mockRepo := new(MockLeadRepo)
	logger := slog.Default()
	service := NewService(mockRepo, logger)

	t.Run("Success", func(t *testing.T) {
		ctx := context.Background()
		leadID := uuid.New()
		expected := &types.Lead{ID: leadID, Name: "Astrid Berg"}

		mockRepo.On("GetByID", mock.Anything, leadID).Return(expected, nil).Once()

		lead, err := service.GetLead(ctx, leadID)
		assert.NoError(t, err)
		assert.Equal(t, expected, lead)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctx := context.Background()
		leadID := uuid.New()
		mockRepo.On("GetByID", mock.Anything, leadID).Return(nil, ErrLeadNotFound).Once()

		_, err := service.GetLead(ctx, leadID)
		assert.ErrorIs(t, err, ErrLeadNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestListLeads(t *testing.T) {
	mockRepo := new(MockLeadRepo)
	logger := slog.Default()
	service := NewService(mockRepo, logger)

	t.Run("ClampsLimit", func(t *testing.T) {
		ctx := context.Background()
		mockRepo.On("List", mock.Anything, (*types.LeadStatus)(nil), 50, 0).Return([]*types.Lead{}, nil).Once()

		_, err := service.ListLeads(ctx, nil, -5, -10)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("PassesStatusFilter", func(t *testing.T) {
		ctx := context.Background()
		status := types.LeadStatusDraft
		expected := []*types.Lead{{ID: uuid.New(), Status: types.LeadStatusDraft}}

		mockRepo.On("List", mock.Anything, &status, 20, 0).Return(expected, nil).Once()

		leads, err := service.ListLeads(ctx, &status, 20, 0)
		assert.NoError(t, err)
		assert.Equal(t, expected, leads)
		mockRepo.AssertExpectations(t)
	})
}
