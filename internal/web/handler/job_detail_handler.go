package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/session"
)

// JobDetailHandler owns the single-posting view and the apply action.
type JobDetailHandler struct {
	jobs  ports.JobsClient
	apps  ports.ApplicationsClient
	store *session.Store
}

func NewJobDetailHandler(jobs ports.JobsClient, apps ports.ApplicationsClient, store *session.Store) *JobDetailHandler {
	return &JobDetailHandler{jobs: jobs, apps: apps, store: store}
}

type jobDetailResponse struct {
	State    viewState          `json:"state"`
	Error    string             `json:"error,omitempty"`
	Job      *domain.JobPosting `json:"job,omitempty"`
	CanApply bool               `json:"can_apply"`
}

// Get handles GET /jobs/:id. A missing posting renders as an inline
// not_found state, not a crash.
func (h *JobDetailHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}

	resp := jobDetailResponse{State: stateReady, CanApply: h.store.IsApplicant()}
	job, err := h.jobs.GetByID(c.Request().Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.State = stateNotFound
		countRender("job_detail", stateNotFound)
		return c.JSON(http.StatusNotFound, resp)
	case err != nil:
		resp.State = stateError
		resp.Error = displayMessage(err, "failed to load job posting")
		countRender("job_detail", stateError)
		return c.JSON(http.StatusOK, resp)
	}

	resp.Job = job
	countRender("job_detail", stateReady)
	return c.JSON(http.StatusOK, resp)
}

// Apply handles POST /jobs/:id/apply: a multipart form with a `resume` file
// and an optional cover letter. Duplicate applications surface with their
// own message, distinct from generic validation failures.
func (h *JobDetailHandler) Apply(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return domain.NewValidationError("resume", "a resume file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	app, err := h.apps.Create(c.Request().Context(), ports.CreateApplicationInput{
		JobID:       id,
		ResumeName:  fileHeader.Filename,
		Resume:      file,
		CoverLetter: c.FormValue("cover_letter"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, app)
}
