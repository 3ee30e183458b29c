package server

import (
	"fmt"
	"strconv"
	"strings"

	"alumnihub/internal/export"
	"alumnihub/internal/models"
	"alumnihub/internal/notifications"
	"alumnihub/internal/observability"
	"alumnihub/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postJobRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	Location    string `json:"location"`
	PostedByID  uint   `json:"postedById"`
}

type applyRequest struct {
	JobID  uint `json:"jobId"`
	UserID uint `json:"userId"`
}

// GetJobs handles GET /api/jobs
// @Summary List jobs
// @Description Jobs newest first with their poster
// @Tags jobs
// @Produce json
// @Param postedById query int false "Only jobs posted by this user"
// @Success 200 {array} models.Job
// @Security BearerAuth
// @Router /jobs [get]
func (s *Server) GetJobs(c *fiber.Ctx) error {
	postedByID := c.QueryInt("postedById", 0)
	if postedByID < 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid postedById"))
	}

	jobs, err := s.jobService.ListJobs(c.UserContext(), uint(postedByID))
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(jobs)
}

// PostJob handles POST /api/post-job
// @Summary Post a job
// @Description Only alumni can post jobs
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body postJobRequest true "Job"
// @Success 201 {object} models.Job
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /post-job [post]
func (s *Server) PostJob(c *fiber.Ctx) error {
	var req postJobRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	job, err := s.jobService.PostJob(c.UserContext(), service.PostJobInput{
		PosterID:        currentUserID(c),
		ClaimedPosterID: req.PostedByID,
		Title:           req.Title,
		Company:         req.Company,
		Description:     req.Description,
		Location:        req.Location,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(job)
}

// ApplyForJob handles POST /api/apply
// @Summary Apply for a job
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body applyRequest true "Application"
// @Success 201 {object} object{message=string,application=models.JobApplication}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /apply [post]
func (s *Server) ApplyForJob(c *fiber.Ctx) error {
	var req applyRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	userID := currentUserID(c)
	application, err := s.jobService.Apply(c.UserContext(), service.ApplyInput{
		UserID:        userID,
		ClaimedUserID: req.UserID,
		JobID:         req.JobID,
	})
	if err != nil {
		return s.respondServiceError(c, err)
	}

	if job := application.Job; job != nil && job.PostedByID != userID {
		s.publishUserEvent(job.PostedByID, notifications.EventApplicationReceived, fiber.Map{
			"jobId":         job.ID,
			"jobTitle":      job.Title,
			"applicationId": application.ID,
			"applicantId":   userID,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":     "Application submitted",
		"application": application,
	})
}

// GetAppliedJobs handles GET /api/applied/:id
// @Summary Jobs a user applied for
// @Tags jobs
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} models.AppliedJob
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /applied/{id} [get]
func (s *Server) GetAppliedJobs(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	applied, err := s.jobService.AppliedJobs(c.UserContext(), currentUserID(c), id)
	if err != nil {
		return s.respondServiceError(c, err)
	}
	return c.JSON(applied)
}

// DownloadApplications handles GET /api/download-applications?jobId=
// @Summary Export applicants
// @Description xlsx workbook of a job's applicants. Job poster or admin only.
// @Tags jobs
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param jobId query int true "Job ID"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /download-applications [get]
func (s *Server) DownloadApplications(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("jobId"))
	if raw == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Job ID is required"))
	}
	jobID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || jobID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid job ID"))
	}

	job, applicants, err := s.jobService.ApplicantsForExport(c.UserContext(), currentUserID(c), uint(jobID))
	if err != nil {
		observability.ApplicantExportsTotal.WithLabelValues("rejected").Inc()
		return s.respondServiceError(c, err)
	}

	if !s.exportLimiter.Allow() {
		observability.ApplicantExportsTotal.WithLabelValues("throttled").Inc()
		return models.RespondWithError(c, fiber.StatusTooManyRequests,
			models.NewValidationError("Too many exports, please try again later."))
	}

	buf, err := export.ApplicantsWorkbook(applicants)
	if err != nil {
		observability.ApplicantExportsTotal.WithLabelValues("error").Inc()
		return s.respondServiceError(c, models.NewInternalError(err))
	}

	observability.ApplicantExportsTotal.WithLabelValues("success").Inc()
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, export.Filename(job.ID)))
	return c.Send(buf.Bytes())
}
