package service

import (
	"context"
	"strings"

	"alumnihub/internal/models"
	"alumnihub/internal/observability"
	"alumnihub/internal/repository"
)

type JobService struct {
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type PostJobInput struct {
	PosterID uint
	// ClaimedPosterID is the postedById sent in the body, if any.
	ClaimedPosterID uint
	Title           string
	Company         string
	Description     string
	Location        string
}

type ApplyInput struct {
	UserID uint
	// ClaimedUserID is the userId sent in the body, if any.
	ClaimedUserID uint
	JobID         uint
}

func NewJobService(
	jobRepo repository.JobRepository,
	userRepo repository.UserRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *JobService {
	return &JobService{
		jobRepo:  jobRepo,
		userRepo: userRepo,
		isAdmin:  isAdmin,
	}
}

func (s *JobService) ListJobs(ctx context.Context, postedByID uint) ([]models.Job, error) {
	return s.jobRepo.List(ctx, postedByID)
}

func (s *JobService) PostJob(ctx context.Context, in PostJobInput) (*models.Job, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Company = strings.TrimSpace(in.Company)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)

	if in.Title == "" || in.Company == "" || in.Description == "" || in.Location == "" {
		return nil, models.NewValidationError("All fields are required!")
	}
	if len(in.Title) > 200 || len(in.Company) > 120 || len(in.Location) > 120 {
		return nil, models.NewValidationError("Title, company or location too long")
	}
	if in.ClaimedPosterID != 0 && in.ClaimedPosterID != in.PosterID {
		return nil, models.NewForbiddenError("You can only post jobs as yourself")
	}

	poster, err := s.userRepo.GetByID(ctx, in.PosterID)
	if err != nil {
		return nil, err
	}
	if !poster.IsAlumni() {
		return nil, models.NewForbiddenError("Only Alumni can post jobs!")
	}

	job := &models.Job{
		Title:       in.Title,
		Company:     in.Company,
		Description: in.Description,
		Location:    in.Location,
		PostedByID:  poster.ID,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}
	job.PostedBy = poster
	return job, nil
}

// Apply records an application; the returned application carries its job.
func (s *JobService) Apply(ctx context.Context, in ApplyInput) (*models.JobApplication, error) {
	if in.JobID == 0 {
		return nil, models.NewValidationError("Job ID is required")
	}
	if in.ClaimedUserID != 0 && in.ClaimedUserID != in.UserID {
		return nil, models.NewForbiddenError("You can only apply as yourself")
	}

	job, err := s.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		return nil, err
	}

	applied, err := s.jobRepo.HasApplied(ctx, in.UserID, in.JobID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, models.NewConflictError("You have already applied for this job")
	}

	application := &models.JobApplication{UserID: in.UserID, JobID: in.JobID}
	if err := s.jobRepo.Apply(ctx, application); err != nil {
		return nil, err
	}
	application.Job = job

	observability.JobApplicationsTotal.Inc()
	return application, nil
}

func (s *JobService) AppliedJobs(ctx context.Context, actorID, userID uint) ([]models.AppliedJob, error) {
	if actorID != userID {
		if err := requireAdmin(ctx, s.isAdmin, actorID, "You can only view your own applications"); err != nil {
			return nil, err
		}
	}

	ids, err := s.jobRepo.AppliedJobIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.AppliedJob, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.AppliedJob{JobID: id})
	}
	return out, nil
}

// ApplicantsForExport returns the job and its applicants when the actor is its poster or an admin.
func (s *JobService) ApplicantsForExport(ctx context.Context, actorID, jobID uint) (*models.Job, []repository.Applicant, error) {
	if jobID == 0 {
		return nil, nil, models.NewValidationError("Job ID is required")
	}

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job.PostedByID != actorID {
		if err := requireAdmin(ctx, s.isAdmin, actorID, "Only the job poster can download applications"); err != nil {
			return nil, nil, err
		}
	}

	applicants, err := s.jobRepo.ListApplicants(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	return job, applicants, nil
}
