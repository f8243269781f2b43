package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/session"
)

// HomeHandler owns the public listing view. Anyone may browse; the role
// predicates only gate which actions the chrome offers.
type HomeHandler struct {
	jobs  ports.JobsClient
	store *session.Store
}

func NewHomeHandler(jobs ports.JobsClient, store *session.Store) *HomeHandler {
	return &HomeHandler{jobs: jobs, store: store}
}

type homeResponse struct {
	State    viewState           `json:"state"`
	Error    string              `json:"error,omitempty"`
	Jobs     []domain.JobPosting `json:"jobs"`
	Total    int                 `json:"total"`
	CanPost  bool                `json:"can_post"`
	CanApply bool                `json:"can_apply"`
}

// List handles GET /. Query params q, location, and min_salary filter the
// listing with a pure match; a fetch failure renders inline as an error
// state rather than failing the view.
func (h *HomeHandler) List(c echo.Context) error {
	resp := homeResponse{
		State: stateReady,
		// Queried at render time so a session change shows up without any
		// remount of the view.
		CanPost:  h.store.IsEmployer(),
		CanApply: h.store.IsApplicant(),
	}

	jobs, err := h.jobs.List(c.Request().Context())
	if err != nil {
		resp.State = stateError
		resp.Error = displayMessage(err, "failed to load job postings")
		resp.Jobs = []domain.JobPosting{}
		countRender("home", stateError)
		return c.JSON(http.StatusOK, resp)
	}

	query := c.QueryParam("q")
	location := c.QueryParam("location")
	minSalary, _ := strconv.ParseFloat(c.QueryParam("min_salary"), 64)

	filtered := make([]domain.JobPosting, 0, len(jobs))
	for _, job := range jobs {
		if matchJob(job, query, location, minSalary) {
			filtered = append(filtered, job)
		}
	}

	resp.Jobs = filtered
	resp.Total = len(filtered)
	countRender("home", stateReady)
	return c.JSON(http.StatusOK, resp)
}

// matchJob is the stateless search predicate: case-insensitive substring on
// title/description, substring on location, and a salary floor.
func matchJob(job domain.JobPosting, query, location string, minSalary float64) bool {
	if query != "" {
		q := strings.ToLower(query)
		if !strings.Contains(strings.ToLower(job.Title), q) &&
			!strings.Contains(strings.ToLower(job.Description), q) {
			return false
		}
	}
	if location != "" &&
		!strings.Contains(strings.ToLower(job.Location), strings.ToLower(location)) {
		return false
	}
	if minSalary > 0 && float64(job.Salary) < minSalary {
		return false
	}
	return true
}
