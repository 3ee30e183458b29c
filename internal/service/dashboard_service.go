package service

import (
	"context"

	"alumnihub/internal/models"
	"alumnihub/internal/observability"
	"alumnihub/internal/repository"

	"golang.org/x/sync/errgroup"
)

type DashboardService struct {
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
	jobRepo   repository.JobRepository
}

// Dashboard aggregates everything the member landing page shows.
type Dashboard struct {
	User          *models.User   `json:"user"`
	Events        []models.Event `json:"events"`
	Jobs          []models.Job   `json:"jobs"`
	MyJobs        []models.Job   `json:"myJobs"`
	AppliedJobIDs []uint         `json:"appliedJobIds"`
}

func NewDashboardService(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	jobRepo repository.JobRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		jobRepo:   jobRepo,
	}
}

// Load fetches the five dashboard parts concurrently. The first failure cancels the rest.
func (s *DashboardService) Load(ctx context.Context, userID uint) (*Dashboard, error) {
	out := &Dashboard{}
	g, gctx := errgroup.WithContext(ctx)
	tl := observability.GetTraceLayer()

	traced := func(repo, method string, fn func(ctx context.Context) error) func() error {
		return func() error {
			spanCtx, span := tl.TraceServiceToRepository(gctx, repo, method)
			defer span.End()
			err := fn(spanCtx)
			observability.RecordErrorInContext(spanCtx, err)
			return err
		}
	}

	g.Go(traced("users", "GetByID", func(ctx context.Context) error {
		user, err := s.userRepo.GetByID(ctx, userID)
		out.User = user
		return err
	}))
	g.Go(traced("events", "List", func(ctx context.Context) error {
		events, err := s.eventRepo.List(ctx)
		out.Events = events
		return err
	}))
	g.Go(traced("jobs", "List", func(ctx context.Context) error {
		jobs, err := s.jobRepo.List(ctx, 0)
		out.Jobs = jobs
		return err
	}))
	g.Go(traced("jobs", "ListByPoster", func(ctx context.Context) error {
		mine, err := s.jobRepo.List(ctx, userID)
		out.MyJobs = mine
		return err
	}))
	g.Go(traced("jobs", "AppliedJobIDs", func(ctx context.Context) error {
		ids, err := s.jobRepo.AppliedJobIDs(ctx, userID)
		out.AppliedJobIDs = ids
		return err
	}))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
