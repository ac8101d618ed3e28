package leads

import (
	"context"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulgosnell/liv-concierge/internal/types"
)

var leadColumnNames = []string{
	"id", "name", "email", "phone", "trip_type", "travel_dates",
	"details", "source", "status", "created_at", "updated_at",
}

func leadRow(lead types.Lead) *pgxmock.Rows {
	return pgxmock.NewRows(leadColumnNames).AddRow(
		lead.ID, lead.Name, lead.Email, lead.Phone, lead.TripType,
		lead.TravelDates, lead.Details, lead.Source, lead.Status,
		lead.CreatedAt, lead.UpdatedAt,
	)
}

func TestPostgresLeadRepository_Create(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresLeadRepository(mockPool, slog.Default())

	now := time.Now()
	lead := types.Lead{
		ID:        uuid.New(),
		Name:      "Astrid Berg",
		Email:     "astrid@example.com",
		Status:    types.LeadStatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mockPool.ExpectQuery(regexp.QuoteMeta("INSERT INTO leads")).
		WithArgs(lead.Name, lead.Email, "", "", "", "", "", types.LeadStatusSubmitted).
		WillReturnRows(leadRow(lead))

	created, err := repo.Create(context.Background(), types.Lead{
		Name:   "Astrid Berg",
		Email:  "astrid@example.com",
		Status: types.LeadStatusSubmitted,
	})

	assert.NoError(t, err)
	assert.Equal(t, lead.ID, created.ID)
	assert.Equal(t, types.LeadStatusSubmitted, created.Status)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresLeadRepository_GetByID(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresLeadRepository(mockPool, slog.Default())

	t.Run("Found", func(t *testing.T) {
		lead := types.Lead{ID: uuid.New(), Name: "Astrid Berg", Status: types.LeadStatusDraft}

		mockPool.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, phone, trip_type, travel_dates, details, source, status, created_at, updated_at FROM leads WHERE id = $1")).
			WithArgs(lead.ID).
			WillReturnRows(leadRow(lead))

		got, err := repo.GetByID(context.Background(), lead.ID)
		assert.NoError(t, err)
		assert.Equal(t, lead.Name, got.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		leadID := uuid.New()
		mockPool.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs(leadID).
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetByID(context.Background(), leadID)
		assert.ErrorIs(t, err, ErrLeadNotFound)
	})

	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresLeadRepository_List(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresLeadRepository(mockPool, slog.Default())

	t.Run("WithoutFilter", func(t *testing.T) {
		rows := leadRow(types.Lead{ID: uuid.New(), Status: types.LeadStatusSubmitted}).AddRow(
			uuid.New(), "", "", "", "", "", "", "", types.LeadStatusDraft, time.Time{}, time.Time{},
		)

		mockPool.ExpectQuery(regexp.QuoteMeta("FROM leads ORDER BY created_at DESC LIMIT 50 OFFSET 0")).
			WillReturnRows(rows)

		leads, err := repo.List(context.Background(), nil, 50, 0)
		assert.NoError(t, err)
		assert.Len(t, leads, 2)
	})

	t.Run("WithStatusFilter", func(t *testing.T) {
		status := types.LeadStatusDraft
		mockPool.ExpectQuery(regexp.QuoteMeta("FROM leads WHERE status = $1")).
			WithArgs(status).
			WillReturnRows(pgxmock.NewRows(leadColumnNames))

		leads, err := repo.List(context.Background(), &status, 10, 0)
		assert.NoError(t, err)
		assert.Empty(t, leads)
	})

	assert.NoError(t, mockPool.ExpectationsWereMet())
}
