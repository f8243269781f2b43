package ports

import (
	"context"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
)

// JobInput carries the writable fields of a job posting. All four are
// required by the backend; salary travels as a JSON number.
type JobInput struct {
	Title       string  `validate:"required"`
	Description string  `validate:"required"`
	Location    string  `validate:"required"`
	Salary      float64 `validate:"required,gt=0"`
}

// JobsClient wraps the backend's job endpoints. Reads are open to anonymous
// callers; writes require an employer session (enforced server-side).
type JobsClient interface {
	List(ctx context.Context) ([]domain.JobPosting, error)
	GetByID(ctx context.Context, id int64) (*domain.JobPosting, error)
	Create(ctx context.Context, input JobInput) (*domain.JobPosting, error)
	Update(ctx context.Context, id int64, input JobInput) (*domain.JobPosting, error)
	Delete(ctx context.Context, id int64) error
}
