package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobdeck/jobboard-client/internal/metrics"
	"github.com/jobdeck/jobboard-client/internal/session"
)

// loginPath is where anonymous visitors are sent when they hit a guarded
// view.
const loginPath = "/login"

// RequireSession gates authenticated-only views. It reads the session store
// and nothing else: with a session the view renders, without one the request
// is redirected to the login entry point before the view runs.
func RequireSession(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !store.Authenticated() {
				metrics.GuardRedirectsTotal.Inc()
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}
