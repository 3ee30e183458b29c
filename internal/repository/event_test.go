package repository

import (
	"context"
	"testing"
	"time"

	"alumnihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository_CRUD(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	past := &models.Event{Title: "Reunion", Description: "d", Location: "Hall", Date: time.Now().AddDate(-1, 0, 0)}
	future := &models.Event{Title: "Gala", Description: "d", Location: "Hotel", Date: time.Now().AddDate(0, 2, 0)}
	require.NoError(t, repo.Create(ctx, past))
	require.NoError(t, repo.Create(ctx, future))

	events, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Gala", events[0].Title)

	future.Location = "Museum"
	require.NoError(t, repo.Update(ctx, future))
	got, err := repo.GetByID(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, "Museum", got.Location)

	require.NoError(t, repo.Delete(ctx, past.ID))
	err = repo.Delete(ctx, past.ID)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}
