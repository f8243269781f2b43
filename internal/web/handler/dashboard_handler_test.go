package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/session"
)

type memStorage struct {
	slots map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{slots: make(map[string]string)}
}

func (m *memStorage) Get(slot string) (string, bool) {
	v, ok := m.slots[slot]
	return v, ok
}

func (m *memStorage) Set(slot, value string) error {
	m.slots[slot] = value
	return nil
}

func (m *memStorage) Delete(slot string) {
	delete(m.slots, slot)
}

func sessionStore(t *testing.T, userJSON string) *session.Store {
	t.Helper()
	storage := newMemStorage()
	storage.slots[session.SlotToken] = "dG9r"
	storage.slots[session.SlotUser] = userJSON
	store := session.NewStore(storage, zerolog.Nop())
	store.Restore()
	return store
}

type stubJobs struct {
	jobs      []domain.JobPosting
	err       error
	listCalls int
	created   []ports.JobInput
	deleted   []int64
}

func (s *stubJobs) List(_ context.Context) ([]domain.JobPosting, error) {
	s.listCalls++
	return s.jobs, s.err
}

func (s *stubJobs) GetByID(_ context.Context, id int64) (*domain.JobPosting, error) {
	for _, job := range s.jobs {
		if job.ID == id {
			j := job
			return &j, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubJobs) Create(_ context.Context, input ports.JobInput) (*domain.JobPosting, error) {
	s.created = append(s.created, input)
	return &domain.JobPosting{ID: 99, Title: input.Title, Salary: domain.Salary(input.Salary)}, nil
}

func (s *stubJobs) Update(_ context.Context, id int64, input ports.JobInput) (*domain.JobPosting, error) {
	return &domain.JobPosting{ID: id, Title: input.Title}, nil
}

func (s *stubJobs) Delete(_ context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubApps struct {
	apps      []domain.Application
	err       error
	listCalls int
	// updateFn, when set, intercepts UpdateStatus.
	updateFn func(id int64, status domain.ApplicationStatus) (*domain.Application, error)
}

func (s *stubApps) List(_ context.Context) ([]domain.Application, error) {
	s.listCalls++
	out := make([]domain.Application, len(s.apps))
	copy(out, s.apps)
	return out, s.err
}

func (s *stubApps) GetByID(_ context.Context, id int64) (*domain.Application, error) {
	for _, app := range s.apps {
		if app.ID == id {
			a := app
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *stubApps) Create(_ context.Context, _ ports.CreateApplicationInput) (*domain.Application, error) {
	return nil, domain.ErrDuplicateApplication
}

func (s *stubApps) UpdateStatus(_ context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	if s.updateFn != nil {
		return s.updateFn(id, status)
	}
	return &domain.Application{ID: id, Status: status}, nil
}

func (s *stubApps) Delete(_ context.Context, _ int64) error { return nil }

func formContext(t *testing.T, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func employerStore(t *testing.T) *session.Store {
	return sessionStore(t, `{"id":1,"email":"boss@x.com","role":["employer"]}`)
}

func TestDashboard_Refresh_FiltersOwnPostings(t *testing.T) {
	jobs := &stubJobs{jobs: []domain.JobPosting{
		{ID: 1, Title: "Mine", EmployerID: 1},
		{ID: 2, Title: "Someone else's", EmployerID: 2},
	}}
	apps := &stubApps{}
	h := NewDashboardHandler(jobs, apps, employerStore(t), zerolog.Nop())

	h.refresh(context.Background())

	resp := h.render()
	if resp.State != stateReady {
		t.Fatalf("state = %s", resp.State)
	}
	if len(resp.Jobs) != 1 || resp.Jobs[0].ID != 1 {
		t.Fatalf("jobs = %+v, want only own posting", resp.Jobs)
	}
	if !resp.IsEmployer || resp.IsApplicant {
		t.Fatalf("role flags wrong: %+v", resp)
	}
}

func TestDashboard_Refresh_ErrorRendersInline(t *testing.T) {
	jobs := &stubJobs{err: domain.ErrNetwork}
	apps := &stubApps{}
	h := NewDashboardHandler(jobs, apps, employerStore(t), zerolog.Nop())

	h.refresh(context.Background())

	resp := h.render()
	if resp.State != stateError {
		t.Fatalf("state = %s, want error", resp.State)
	}
	if resp.Error == "" {
		t.Fatalf("expected a recovered message")
	}
}

func TestDashboard_UpdateStatus_PatchesSingleEntryWithoutRefetch(t *testing.T) {
	apps := &stubApps{apps: []domain.Application{
		{ID: 42, Status: domain.StatusPending},
		{ID: 43, Status: domain.StatusPending},
	}}
	h := NewDashboardHandler(&stubJobs{}, apps, employerStore(t), zerolog.Nop())
	h.refresh(context.Background())
	listCallsBefore := apps.listCalls

	c, rec := formContext(t, http.MethodPost, "/dashboard/applications/42/status",
		url.Values{"status": {"accepted"}})
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if apps.listCalls != listCallsBefore {
		t.Fatalf("status mutation must not refetch the list")
	}

	resp := h.render()
	if resp.Applications[0].Status != domain.StatusAccepted {
		t.Fatalf("entry 42 = %s, want accepted", resp.Applications[0].Status)
	}
	if resp.Applications[1].Status != domain.StatusPending {
		t.Fatalf("entry 43 changed: %s", resp.Applications[1].Status)
	}
}

func TestDashboard_UpdateStatus_StaleGenerationDiscarded(t *testing.T) {
	apps := &stubApps{apps: []domain.Application{{ID: 42, Status: domain.StatusPending}}}
	h := NewDashboardHandler(&stubJobs{}, apps, employerStore(t), zerolog.Nop())
	h.refresh(context.Background())

	// The mutation completes only after a newer fetch has landed; its local
	// patch must be discarded.
	apps.updateFn = func(id int64, status domain.ApplicationStatus) (*domain.Application, error) {
		h.refresh(context.Background())
		return &domain.Application{ID: id, Status: status}, nil
	}

	c, _ := formContext(t, http.MethodPost, "/dashboard/applications/42/status",
		url.Values{"status": {"accepted"}})
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	resp := h.render()
	if resp.Applications[0].Status != domain.StatusPending {
		t.Fatalf("stale patch applied: entry = %s", resp.Applications[0].Status)
	}
}

func TestDashboard_CreateJob_ParsesSalaryAndRefetches(t *testing.T) {
	jobs := &stubJobs{}
	h := NewDashboardHandler(jobs, &stubApps{}, employerStore(t), zerolog.Nop())
	h.refresh(context.Background())
	listCallsBefore := jobs.listCalls

	c, rec := formContext(t, http.MethodPost, "/dashboard/jobs", url.Values{
		"title":       {"Eng"},
		"description": {"..."},
		"location":    {"Remote"},
		"salary":      {"100000"},
	})

	if err := h.CreateJob(c); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(jobs.created) != 1 || jobs.created[0].Salary != 100000 {
		t.Fatalf("created = %+v, want numeric salary 100000", jobs.created)
	}
	if jobs.listCalls != listCallsBefore+1 {
		t.Fatalf("create must be followed by a list refetch")
	}
}

func TestDashboard_CreateJob_NonNumericSalary(t *testing.T) {
	jobs := &stubJobs{}
	h := NewDashboardHandler(jobs, &stubApps{}, employerStore(t), zerolog.Nop())

	c, _ := formContext(t, http.MethodPost, "/dashboard/jobs", url.Values{
		"title":       {"Eng"},
		"description": {"..."},
		"location":    {"Remote"},
		"salary":      {"lots"},
	})

	err := h.CreateJob(c)
	var ve *domain.ValidationError
	if err == nil || !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(jobs.created) != 0 {
		t.Fatalf("invalid form must not reach the jobs client")
	}
}

func TestDashboard_DeleteJob_DropsFromHeldList(t *testing.T) {
	jobs := &stubJobs{jobs: []domain.JobPosting{
		{ID: 1, EmployerID: 1},
		{ID: 2, EmployerID: 1},
	}}
	h := NewDashboardHandler(jobs, &stubApps{}, employerStore(t), zerolog.Nop())
	h.refresh(context.Background())

	c, rec := formContext(t, http.MethodDelete, "/dashboard/jobs/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := h.DeleteJob(c); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}

	resp := h.render()
	if len(resp.Jobs) != 1 || resp.Jobs[0].ID != 2 {
		t.Fatalf("jobs = %+v", resp.Jobs)
	}
}

func TestDashboard_Resume_LazyFetch(t *testing.T) {
	apps := &stubApps{apps: []domain.Application{
		{ID: 42, Status: domain.StatusPending, HasResume: true, ResumeURL: "data:application/pdf;base64,AAAA"},
	}}
	h := NewDashboardHandler(&stubJobs{}, apps, employerStore(t), zerolog.Nop())

	c, rec := formContext(t, http.MethodGet, "/dashboard/applications/42/resume", nil)
	c.SetParamNames("id")
	c.SetParamValues("42")

	if err := h.Resume(c); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "resume_url") {
		t.Fatalf("resume response = %d %s", rec.Code, rec.Body.String())
	}
}
