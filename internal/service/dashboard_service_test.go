package service

import (
	"context"
	"errors"
	"testing"

	"alumnihub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Load(t *testing.T) {
	jobs := noopJobRepo()
	jobs.listFn = func(_ context.Context, postedByID uint) ([]models.Job, error) {
		if postedByID == 0 {
			return []models.Job{{ID: 1}, {ID: 2}}, nil
		}
		return []models.Job{{ID: 2, PostedByID: postedByID}}, nil
	}
	jobs.appliedJobIDsFn = func(_ context.Context, _ uint) ([]uint, error) { return []uint{1}, nil }
	events := noopEventRepo()
	events.listFn = func(_ context.Context) ([]models.Event, error) { return []models.Event{{ID: 9}}, nil }

	svc := NewDashboardService(noopUserRepo(), events, jobs)
	dash, err := svc.Load(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, uint(3), dash.User.ID)
	assert.Len(t, dash.Events, 1)
	assert.Len(t, dash.Jobs, 2)
	require.Len(t, dash.MyJobs, 1)
	assert.Equal(t, uint(3), dash.MyJobs[0].PostedByID)
	assert.Equal(t, []uint{1}, dash.AppliedJobIDs)
}

func TestDashboardService_LoadPropagatesError(t *testing.T) {
	boom := errors.New("events unavailable")
	events := noopEventRepo()
	events.listFn = func(_ context.Context) ([]models.Event, error) { return nil, boom }

	svc := NewDashboardService(noopUserRepo(), events, noopJobRepo())
	dash, err := svc.Load(context.Background(), 3)
	assert.Nil(t, dash)
	assert.ErrorIs(t, err, boom)
}
