package handler

import (
	"errors"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/metrics"
)

// viewState is the tri-state load indicator every view renders alongside its
// data. A detail view may additionally report not_found.
type viewState string

const (
	stateLoading  viewState = "loading"
	stateError    viewState = "error"
	stateReady    viewState = "ready"
	stateNotFound viewState = "not_found"
)

// countRender records the outcome of a view render.
func countRender(view string, state viewState) {
	metrics.ViewRendersTotal.WithLabelValues(view, string(state)).Inc()
}

// displayMessage recovers a user-facing message from an operation failure.
// Known domain errors carry displayable text; anything else collapses to the
// fallback so internals never leak into a view.
func displayMessage(err error, fallback string) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	switch {
	case errors.Is(err, domain.ErrNetwork):
		return "could not reach the job board, please try again"
	case errors.Is(err, domain.ErrDuplicateApplication),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrInvalidCredentials):
		return err.Error()
	}
	return fallback
}
