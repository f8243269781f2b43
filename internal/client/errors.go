package client

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/gateway"
)

// duplicateMarker is the phrase the backend embeds in the job field when the
// same applicant/job pair already exists.
const duplicateMarker = "already applied"

// resourceError maps a gateway rejection onto the domain taxonomy:
// 404 → ErrNotFound, 400 with a field map → ValidationError (or
// ErrDuplicateApplication when the duplicate marker appears). Anything else,
// including network failures, passes through.
func resourceError(err error) error {
	var apiErr *gateway.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.StatusCode {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest:
		fields := apiErr.FieldErrors()
		for _, msgs := range fields {
			for _, msg := range msgs {
				if strings.Contains(strings.ToLower(msg), duplicateMarker) {
					return domain.ErrDuplicateApplication
				}
			}
		}
		if len(fields) > 0 {
			return &domain.ValidationError{Fields: fields}
		}
	}
	return err
}
