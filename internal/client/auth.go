// Package client implements the typed resource clients over the API
// gateway, one per backend resource family. They translate backend
// rejections into domain errors but never swallow or reshape success
// payloads beyond decoding.
package client

import (
	"context"
	"errors"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/gateway"
)

// Auth wraps the user endpoints.
type Auth struct {
	gw *gateway.Client
}

func NewAuth(gw *gateway.Client) *Auth {
	return &Auth{gw: gw}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsEmployer  bool   `json:"is_employer"`
	IsApplicant bool   `json:"is_applicant"`
}

type identityResponse struct {
	UserID int64    `json:"user_id"`
	Email  string   `json:"email"`
	Role   []string `json:"role"`
}

func (r identityResponse) identity() *ports.Identity {
	return &ports.Identity{UserID: r.UserID, Email: r.Email, RoleTags: r.Role}
}

func (a *Auth) Login(ctx context.Context, email, password string) (*ports.Identity, error) {
	var resp identityResponse
	if err := a.gw.PostJSON(ctx, "/users/login/", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, authFailure(err)
	}
	return resp.identity(), nil
}

func (a *Auth) Register(ctx context.Context, input ports.RegisterInput) (*ports.Identity, error) {
	req := registerRequest{
		Email:       input.Email,
		Password:    input.Password,
		IsEmployer:  input.WantsEmployer,
		IsApplicant: input.WantsApplicant,
	}
	var resp identityResponse
	if err := a.gw.PostJSON(ctx, "/users/register/", req, &resp); err != nil {
		return nil, authFailure(err)
	}
	return resp.identity(), nil
}

// authFailure turns a backend rejection into a displayable AuthFailureError,
// keeping the backend's own message when it sent one. Network failures pass
// through untouched.
func authFailure(err error) error {
	var apiErr *gateway.APIError
	if errors.As(err, &apiErr) {
		return &domain.AuthFailureError{Msg: apiErr.Message()}
	}
	return err
}
