package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/session"
)

type stubAuth struct {
	identity *ports.Identity
	err      error
	lastReg  *ports.RegisterInput
}

func (s *stubAuth) Login(_ context.Context, _, _ string) (*ports.Identity, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func (s *stubAuth) Register(_ context.Context, input ports.RegisterInput) (*ports.Identity, error) {
	s.lastReg = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.identity, nil
}

func TestAuth_Login_EstablishesSession(t *testing.T) {
	store := session.NewStore(newMemStorage(), zerolog.Nop())
	auth := &stubAuth{identity: &ports.Identity{UserID: 1, Email: "alice@x.com", RoleTags: []string{"applicant"}}}
	h := NewAuthHandler(store, auth)

	c, rec := formContext(t, http.MethodPost, "/login", url.Values{
		"email":    {"alice@x.com"},
		"password": {"pw"},
	})
	c.Echo().Validator = NewValidator()

	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Authenticated || !resp.IsApplicant || resp.IsEmployer {
		t.Fatalf("resp = %+v", resp)
	}
	if !store.IsApplicant() {
		t.Fatalf("session not installed in store")
	}
}

func TestAuth_Login_RejectedFormFields(t *testing.T) {
	store := session.NewStore(newMemStorage(), zerolog.Nop())
	h := NewAuthHandler(store, &stubAuth{})

	c, _ := formContext(t, http.MethodPost, "/login", url.Values{
		"email": {"not-an-email"},
	})
	c.Echo().Validator = NewValidator()

	err := h.Login(c)
	var ve *domain.ValidationError
	if err == nil || !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if store.Authenticated() {
		t.Fatalf("no session may be installed on a rejected form")
	}
}

func TestAuth_Register_DefaultsToApplicant(t *testing.T) {
	store := session.NewStore(newMemStorage(), zerolog.Nop())
	auth := &stubAuth{identity: &ports.Identity{UserID: 2, Email: "new@x.com", RoleTags: []string{"applicant"}}}
	h := NewAuthHandler(store, auth)

	c, rec := formContext(t, http.MethodPost, "/register", url.Values{
		"email":    {"new@x.com"},
		"password": {"pw"},
	})
	c.Echo().Validator = NewValidator()

	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if auth.lastReg == nil || !auth.lastReg.WantsApplicant || auth.lastReg.WantsEmployer {
		t.Fatalf("register input = %+v, want applicant default", auth.lastReg)
	}
	if !store.Authenticated() {
		t.Fatalf("registration must log the user in")
	}
}

func TestAuth_Logout_Idempotent(t *testing.T) {
	store := sessionStore(t, `{"id":1,"email":"a@x.com","role":["applicant"]}`)
	h := NewAuthHandler(store, &stubAuth{})

	c, rec := formContext(t, http.MethodPost, "/logout", nil)
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if store.Authenticated() {
		t.Fatalf("session survived logout")
	}

	c2, _ := formContext(t, http.MethodPost, "/logout", nil)
	if err := h.Logout(c2); err != nil {
		t.Fatalf("second Logout: %v", err)
	}
}

func TestAuth_SessionView_TracksRoleChanges(t *testing.T) {
	store := session.NewStore(newMemStorage(), zerolog.Nop())
	auth := &stubAuth{identity: &ports.Identity{UserID: 3, Email: "dual@x.com", RoleTags: []string{"employer", "applicant"}}}
	h := NewAuthHandler(store, auth)

	c, rec := formContext(t, http.MethodGet, "/session", nil)
	if err := h.Session(c); err != nil {
		t.Fatalf("Session: %v", err)
	}
	var before sessionResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &before)
	if before.Authenticated {
		t.Fatalf("expected anonymous view first")
	}

	if err := store.Login(context.Background(), auth, "dual@x.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	c2, rec2 := formContext(t, http.MethodGet, "/session", nil)
	if err := h.Session(c2); err != nil {
		t.Fatalf("Session: %v", err)
	}
	var after sessionResponse
	_ = json.Unmarshal(rec2.Body.Bytes(), &after)
	if !after.IsEmployer || !after.IsApplicant {
		t.Fatalf("dual-role session renders %+v", after)
	}
}
