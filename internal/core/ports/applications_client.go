package ports

import (
	"context"
	"io"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
)

// CreateApplicationInput carries the multipart fields of a new application.
// Resume is streamed, not buffered; ResumeName keeps the original filename so
// the backend can record it.
type CreateApplicationInput struct {
	JobID       int64
	ResumeName  string
	Resume      io.Reader
	CoverLetter string
}

// ApplicationsClient wraps the backend's application endpoints. The backend
// scopes every read to the caller: applicants see their own applications,
// employers see applications against their own postings.
type ApplicationsClient interface {
	List(ctx context.Context) ([]domain.Application, error)
	// GetByID is the only fetch that resolves ResumeURL.
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	Create(ctx context.Context, input CreateApplicationInput) (*domain.Application, error)
	// UpdateStatus is a partial update; status is the only field this
	// surface may mutate.
	UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) (*domain.Application, error)
	Delete(ctx context.Context, id int64) error
}
