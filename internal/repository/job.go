package repository

import (
	"context"
	"errors"
	"time"

	"alumnihub/internal/models"
	"alumnihub/internal/observability"

	"gorm.io/gorm"
)

// Applicant is a user joined with the time they applied, used by the export.
type Applicant struct {
	models.User
	AppliedAt time.Time `gorm:"column:applied_at"`
}

// JobRepository defines persistence operations for jobs and applications.
type JobRepository interface {
	List(ctx context.Context, postedByID uint) ([]models.Job, error)
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	Apply(ctx context.Context, application *models.JobApplication) error
	HasApplied(ctx context.Context, userID, jobID uint) (bool, error)
	AppliedJobIDs(ctx context.Context, userID uint) ([]uint, error)
	ListApplicants(ctx context.Context, jobID uint) ([]Applicant, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository returns a new JobRepository implementation.
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// List returns jobs newest first with their poster. postedByID of 0 means all posters.
func (r *jobRepository) List(ctx context.Context, postedByID uint) ([]models.Job, error) {
	defer observability.TrackQuery("select", "jobs")()
	jobs := make([]models.Job, 0)
	q := readDB(r.db).WithContext(ctx).Preload("PostedBy").Order("created_at DESC, id DESC")
	if postedByID != 0 {
		q = q.Where("posted_by_id = ?", postedByID)
	}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := readDB(r.db).WithContext(ctx).Preload("PostedBy").First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundMessage("Job not found")
		}
		return nil, models.NewInternalError(err)
	}
	return &job, nil
}

func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Apply inserts the application. A concurrent duplicate surfaces as the same conflict as the pre-check.
func (r *jobRepository) Apply(ctx context.Context, application *models.JobApplication) error {
	if err := r.db.WithContext(ctx).Create(application).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("You have already applied for this job")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) HasApplied(ctx context.Context, userID, jobID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.JobApplication{}).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *jobRepository) AppliedJobIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := make([]uint, 0)
	if err := readDB(r.db).WithContext(ctx).Model(&models.JobApplication{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Pluck("job_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// ListApplicants returns the applicants for a job in application order.
func (r *jobRepository) ListApplicants(ctx context.Context, jobID uint) ([]Applicant, error) {
	defer observability.TrackQuery("select", "job_applications")()
	applicants := make([]Applicant, 0)
	if err := readDB(r.db).WithContext(ctx).
		Table("job_applications").
		Select("users.*, job_applications.created_at AS applied_at").
		Joins("JOIN users ON users.id = job_applications.user_id").
		Where("job_applications.job_id = ?", jobID).
		Order("job_applications.created_at ASC, job_applications.id ASC").
		Scan(&applicants).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return applicants, nil
}
