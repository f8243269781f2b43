package client

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/gateway"
)

// resumeExtensions is the client-side hint of accepted resume formats. The
// backend is the real gatekeeper; this only spares a doomed upload.
var resumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Applications wraps the application endpoints.
type Applications struct {
	gw *gateway.Client
}

func NewApplications(gw *gateway.Client) *Applications {
	return &Applications{gw: gw}
}

// listEnvelope is the paginated shape some deployments return instead of a
// bare array.
type listEnvelope struct {
	Results []domain.Application `json:"results"`
}

// List fetches the caller's visible applications. The backend returns either
// a bare array or a {results: [...]} envelope; both normalize to one slice
// here so the ambiguity never leaks upward.
func (a *Applications) List(ctx context.Context) ([]domain.Application, error) {
	var raw json.RawMessage
	if err := a.gw.GetJSON(ctx, "/applications/", &raw); err != nil {
		return nil, resourceError(err)
	}

	var apps []domain.Application
	if err := json.Unmarshal(raw, &apps); err != nil {
		var env listEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode applications list: %w", err)
		}
		apps = env.Results
	}
	for i := range apps {
		normalize(&apps[i])
	}
	return apps, nil
}

// GetByID fetches a single application. This is the only call that resolves
// ResumeURL; list payloads never carry it.
func (a *Applications) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	if err := a.gw.GetJSON(ctx, fmt.Sprintf("/applications/%d/", id), &app); err != nil {
		return nil, resourceError(err)
	}
	normalize(&app)
	return &app, nil
}

// Create files a new application as a multipart body with fields `job` and
// `resume`. Applying twice to the same job yields ErrDuplicateApplication.
func (a *Applications) Create(ctx context.Context, input ports.CreateApplicationInput) (*domain.Application, error) {
	ext := strings.ToLower(filepath.Ext(input.ResumeName))
	if !resumeExtensions[ext] {
		return nil, domain.NewValidationError("resume", "resume must be a pdf, doc, or docx file")
	}

	form := &gateway.Form{}
	form.AddField("job", strconv.FormatInt(input.JobID, 10))
	if input.CoverLetter != "" {
		form.AddField("cover_letter", input.CoverLetter)
	}
	form.AddFile("resume", input.ResumeName, input.Resume)

	var app domain.Application
	if err := a.gw.PostMultipart(ctx, "/applications/", form, &app); err != nil {
		return nil, resourceError(err)
	}
	normalize(&app)
	return &app, nil
}

// UpdateStatus partially updates an application; status is the only field
// this surface may touch.
func (a *Applications) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error) {
	if !status.Valid() {
		return nil, domain.NewValidationError("status", "unknown application status")
	}
	payload := map[string]domain.ApplicationStatus{"status": status}
	var app domain.Application
	if err := a.gw.PatchJSON(ctx, fmt.Sprintf("/applications/%d/", id), payload, &app); err != nil {
		return nil, resourceError(err)
	}
	normalize(&app)
	return &app, nil
}

func (a *Applications) Delete(ctx context.Context, id int64) error {
	if err := a.gw.Delete(ctx, fmt.Sprintf("/applications/%d/", id)); err != nil {
		return resourceError(err)
	}
	return nil
}

// normalize applies payload defaults: a missing status means pending.
func normalize(app *domain.Application) {
	if app.Status == "" {
		app.Status = domain.StatusPending
	}
}
