package content

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
)

var triggerColumnNames = []string{
	"id", "slug", "context_type", "display_name", "greeting",
	"active", "created_at", "updated_at",
}

func TestPostgresTriggerRepository_GetBySlug(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresTriggerRepository(mockPool, slog.Default())

	t.Run("Found", func(t *testing.T) {
		id := uuid.New()
		rows := pgxmock.NewRows(triggerColumnNames).AddRow(
			id, "lapland-winter", "destination", "Lapland", "Lapland under the auroras.",
			true, time.Now(), time.Now(),
		)

		mockPool.ExpectQuery(regexp.QuoteMeta("FROM concierge_triggers WHERE slug = $1 AND active = TRUE")).
			WithArgs("lapland-winter").
			WillReturnRows(rows)

		trigger, err := repo.GetBySlug(context.Background(), "lapland-winter")
		assert.NoError(t, err)
		assert.Equal(t, id, trigger.ID)
		assert.Equal(t, "destination", trigger.ContextType)
		assert.Equal(t, "Lapland", trigger.DisplayName)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockPool.ExpectQuery(regexp.QuoteMeta("FROM concierge_triggers")).
			WithArgs("gone").
			WillReturnError(pgx.ErrNoRows)

		_, err := repo.GetBySlug(context.Background(), "gone")
		assert.ErrorIs(t, err, ErrTriggerNotFound)
	})

	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPostgresTriggerRepository_ListActive(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewPostgresTriggerRepository(mockPool, slog.Default())

	rows := pgxmock.NewRows(triggerColumnNames).
		AddRow(uuid.New(), "corporate-page", "corporate", "Corporate & Incentives", "", true, time.Now(), time.Now()).
		AddRow(uuid.New(), "lapland-winter", "destination", "Lapland", "", true, time.Now(), time.Now())

	mockPool.ExpectQuery(regexp.QuoteMeta("FROM concierge_triggers WHERE active = TRUE ORDER BY slug")).
		WillReturnRows(rows)

	triggers, err := repo.ListActive(context.Background())
	assert.NoError(t, err)
	require.Len(t, triggers, 2)
	assert.Equal(t, "corporate-page", triggers[0].Slug)
	assert.Equal(t, "lapland-winter", triggers[1].Slug)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
