package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/gateway"
)

// Jobs wraps the job-posting endpoints. Writes are validated locally before
// the request goes out so obviously malformed postings fail fast.
type Jobs struct {
	gw       *gateway.Client
	validate *validator.Validate
}

func NewJobs(gw *gateway.Client) *Jobs {
	return &Jobs{gw: gw, validate: validator.New()}
}

type jobPayload struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Salary      float64 `json:"salary"`
}

func (j *Jobs) List(ctx context.Context) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	if err := j.gw.GetJSON(ctx, "/jobs/", &jobs); err != nil {
		return nil, resourceError(err)
	}
	return jobs, nil
}

func (j *Jobs) GetByID(ctx context.Context, id int64) (*domain.JobPosting, error) {
	var job domain.JobPosting
	if err := j.gw.GetJSON(ctx, fmt.Sprintf("/jobs/%d/", id), &job); err != nil {
		return nil, resourceError(err)
	}
	return &job, nil
}

func (j *Jobs) Create(ctx context.Context, input ports.JobInput) (*domain.JobPosting, error) {
	if err := j.check(input); err != nil {
		return nil, err
	}
	var job domain.JobPosting
	payload := jobPayload{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Salary:      input.Salary,
	}
	if err := j.gw.PostJSON(ctx, "/jobs/", payload, &job); err != nil {
		return nil, resourceError(err)
	}
	return &job, nil
}

func (j *Jobs) Update(ctx context.Context, id int64, input ports.JobInput) (*domain.JobPosting, error) {
	if err := j.check(input); err != nil {
		return nil, err
	}
	var job domain.JobPosting
	payload := jobPayload{
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Salary:      input.Salary,
	}
	if err := j.gw.PutJSON(ctx, fmt.Sprintf("/jobs/%d/", id), payload, &job); err != nil {
		return nil, resourceError(err)
	}
	return &job, nil
}

func (j *Jobs) Delete(ctx context.Context, id int64) error {
	if err := j.gw.Delete(ctx, fmt.Sprintf("/jobs/%d/", id)); err != nil {
		return resourceError(err)
	}
	return nil
}

// check runs the local field validation and converts failures into the
// domain's field-keyed ValidationError.
func (j *Jobs) check(input ports.JobInput) error {
	err := j.validate.Struct(input)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make(map[string][]string, len(ve))
	for _, fe := range ve {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[field] = append(fields[field], field+" is required")
		case "gt":
			fields[field] = append(fields[field], field+" must be a positive number")
		default:
			fields[field] = append(fields[field], field+" is invalid")
		}
	}
	return &domain.ValidationError{Fields: fields}
}
