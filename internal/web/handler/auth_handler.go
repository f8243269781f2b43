package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/session"
)

// AuthHandler owns the login, registration, and logout views. All session
// mutation goes through the session store; this handler only translates
// forms.
type AuthHandler struct {
	store *session.Store
	auth  ports.AuthClient
}

func NewAuthHandler(store *session.Store, auth ports.AuthClient) *AuthHandler {
	return &AuthHandler{store: store, auth: auth}
}

type loginForm struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerForm struct {
	Email          string `json:"email" form:"email" validate:"required,email"`
	Password       string `json:"password" form:"password" validate:"required"`
	WantsEmployer  bool   `json:"wants_employer" form:"wants_employer"`
	WantsApplicant bool   `json:"wants_applicant" form:"wants_applicant"`
}

type sessionResponse struct {
	Authenticated bool     `json:"authenticated"`
	UserID        int64    `json:"user_id,omitempty"`
	Email         string   `json:"email,omitempty"`
	Roles         []string `json:"roles,omitempty"`
	IsEmployer    bool     `json:"is_employer"`
	IsApplicant   bool     `json:"is_applicant"`
}

func (h *AuthHandler) sessionView() sessionResponse {
	resp := sessionResponse{
		IsEmployer:  h.store.IsEmployer(),
		IsApplicant: h.store.IsApplicant(),
	}
	if sess := h.store.Current(); sess != nil {
		resp.Authenticated = true
		resp.UserID = sess.UserID
		resp.Email = sess.Email
		resp.Roles = sess.RoleTags
	}
	return resp
}

// LoginView renders the login entry point, the target of guard redirects.
func (h *AuthHandler) LoginView(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sessionView())
}

// Login handles POST /login. A rejected attempt leaves any existing session
// untouched; the error handler renders the recovered message.
func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	if err := h.store.Login(c.Request().Context(), h.auth, form.Email, form.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.sessionView())
}

// Register handles POST /register. Registration implies login: a session is
// established immediately afterwards. An account that asks for neither role
// defaults to applicant.
func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return err
	}
	if !form.WantsEmployer && !form.WantsApplicant {
		form.WantsApplicant = true
	}

	err := h.store.Register(c.Request().Context(), h.auth, ports.RegisterInput{
		Email:          form.Email,
		Password:       form.Password,
		WantsEmployer:  form.WantsEmployer,
		WantsApplicant: form.WantsApplicant,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.sessionView())
}

// Logout handles POST /logout. Idempotent: logging out while anonymous is a
// no-op.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.store.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Session handles GET /session, the view chrome's source for role-gated
// rendering decisions.
func (h *AuthHandler) Session(c echo.Context) error {
	return c.JSON(http.StatusOK, h.sessionView())
}
