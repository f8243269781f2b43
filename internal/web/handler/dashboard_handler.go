package handler

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/session"
)

// DashboardHandler owns the authenticated dashboard: the employer's own
// postings and the applications visible to the caller. It holds the fetched
// data between requests and patches it locally after a status mutation
// instead of refetching the whole list.
//
// Every fetch bumps a generation counter; a mutation captures the counter
// before its network call and discards its local patch if a newer fetch
// landed meanwhile, so a slow completion can never write into torn-down
// state.
type DashboardHandler struct {
	jobs  ports.JobsClient
	apps  ports.ApplicationsClient
	store *session.Store
	log   zerolog.Logger

	mu           sync.Mutex
	generation   uint64
	state        viewState
	loadErr      string
	myJobs       []domain.JobPosting
	applications []domain.Application
}

func NewDashboardHandler(jobs ports.JobsClient, apps ports.ApplicationsClient, store *session.Store, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		jobs:  jobs,
		apps:  apps,
		store: store,
		log:   log,
		state: stateLoading,
	}
}

type dashboardResponse struct {
	State        viewState            `json:"state"`
	Error        string               `json:"error,omitempty"`
	IsEmployer   bool                 `json:"is_employer"`
	IsApplicant  bool                 `json:"is_applicant"`
	Jobs         []domain.JobPosting  `json:"jobs"`
	Applications []domain.Application `json:"applications"`
}

// View handles GET /dashboard: refetch, then render. The route guard has
// already ensured a session exists.
func (h *DashboardHandler) View(c echo.Context) error {
	h.refresh(c.Request().Context())
	resp := h.render()
	countRender("dashboard", resp.State)
	return c.JSON(http.StatusOK, resp)
}

// refresh refetches the dashboard's resources. Employers additionally load
// the job list, narrowed to their own postings; the backend already scopes
// the application list to the caller.
func (h *DashboardHandler) refresh(ctx context.Context) {
	sess := h.store.Current()
	if sess == nil {
		return
	}

	h.mu.Lock()
	h.generation++
	gen := h.generation
	h.state = stateLoading
	h.mu.Unlock()

	var owned []domain.JobPosting
	var err error
	if sess.IsEmployer() {
		var all []domain.JobPosting
		all, err = h.jobs.List(ctx)
		for _, job := range all {
			if job.EmployerID == sess.UserID {
				owned = append(owned, job)
			}
		}
	}

	var apps []domain.Application
	if err == nil {
		apps, err = h.apps.List(ctx)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.generation {
		// A newer fetch superseded this one while it was in flight.
		h.log.Debug().Uint64("generation", gen).Msg("discarding stale dashboard fetch")
		return
	}
	if err != nil {
		h.state = stateError
		h.loadErr = displayMessage(err, "failed to load dashboard")
		return
	}
	h.myJobs = owned
	h.applications = apps
	h.state = stateReady
	h.loadErr = ""
}

func (h *DashboardHandler) render() dashboardResponse {
	h.mu.Lock()
	defer h.mu.Unlock()

	resp := dashboardResponse{
		State: h.state,
		Error: h.loadErr,
		// Role predicates are queried per render, never cached at mount, so
		// a session change is reflected immediately.
		IsEmployer:   h.store.IsEmployer(),
		IsApplicant:  h.store.IsApplicant(),
		Jobs:         make([]domain.JobPosting, len(h.myJobs)),
		Applications: make([]domain.Application, len(h.applications)),
	}
	copy(resp.Jobs, h.myJobs)
	copy(resp.Applications, h.applications)
	return resp
}

type jobForm struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Location    string `json:"location" form:"location"`
	// Salary arrives as text from the form and is sent onward as a number.
	Salary string `json:"salary" form:"salary"`
}

// CreateJob handles POST /dashboard/jobs. Creation and the follow-up list
// refresh run as two dependent calls, not concurrently.
func (h *DashboardHandler) CreateJob(c echo.Context) error {
	var form jobForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	salary, err := strconv.ParseFloat(form.Salary, 64)
	if err != nil {
		return domain.NewValidationError("salary", "salary must be a number")
	}

	job, err := h.jobs.Create(c.Request().Context(), ports.JobInput{
		Title:       form.Title,
		Description: form.Description,
		Location:    form.Location,
		Salary:      salary,
	})
	if err != nil {
		return err
	}

	h.refresh(c.Request().Context())
	return c.JSON(http.StatusCreated, job)
}

// DeleteJob handles DELETE /dashboard/jobs/:id and drops the posting from
// the held list on success.
func (h *DashboardHandler) DeleteJob(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}

	h.mu.Lock()
	gen := h.generation
	h.mu.Unlock()

	if err := h.jobs.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	h.mu.Lock()
	if gen == h.generation {
		kept := h.myJobs[:0]
		for _, job := range h.myJobs {
			if job.ID != id {
				kept = append(kept, job)
			}
		}
		h.myJobs = kept
	}
	h.mu.Unlock()
	return c.NoContent(http.StatusNoContent)
}

type statusForm struct {
	Status string `json:"status" form:"status"`
}

// UpdateStatus handles POST /dashboard/applications/:id/status. On success
// only the affected entry is patched in place; no refetch happens. A patch
// whose fetch generation is stale is discarded.
func (h *DashboardHandler) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid application id")
	}
	var form statusForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	h.mu.Lock()
	gen := h.generation
	h.mu.Unlock()

	updated, err := h.apps.UpdateStatus(c.Request().Context(), id, domain.ApplicationStatus(form.Status))
	if err != nil {
		return err
	}

	h.mu.Lock()
	if gen == h.generation {
		for i := range h.applications {
			if h.applications[i].ID == id {
				h.applications[i].Status = updated.Status
			}
		}
	} else {
		h.log.Debug().Int64("application_id", id).Msg("discarding stale status patch")
	}
	h.mu.Unlock()

	return c.JSON(http.StatusOK, updated)
}

// Resume handles GET /dashboard/applications/:id/resume. Resume links are
// absent from list payloads, so the single application is fetched lazily
// here.
func (h *DashboardHandler) Resume(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid application id")
	}

	app, err := h.apps.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if app.ResumeURL == "" {
		return echo.NewHTTPError(http.StatusNotFound, "resume not available")
	}
	return c.JSON(http.StatusOK, map[string]string{"resume_url": app.ResumeURL})
}
