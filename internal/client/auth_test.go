package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/jobdeck/jobboard-client/internal/core/domain"
	"github.com/jobdeck/jobboard-client/internal/core/ports"
	"github.com/jobdeck/jobboard-client/internal/gateway"
)

type noCreds struct{}

func (noCreds) Credential() string { return "" }

func newTestGateway(t *testing.T, h http.HandlerFunc) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return gateway.New(srv.URL, noCreds{}, zerolog.Nop())
}

func TestAuth_Login_MapsIdentity(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/login/" || r.Method != http.MethodPost {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		var req map[string]string
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &req)
		if req["email"] != "alice@x.com" || req["password"] != "pw" {
			t.Errorf("payload = %v", req)
		}
		_, _ = w.Write([]byte(`{"user_id":1,"email":"alice@x.com","role":["applicant"]}`))
	})

	ident, err := NewAuth(gw).Login(context.Background(), "alice@x.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if ident.UserID != 1 || ident.Email != "alice@x.com" {
		t.Fatalf("identity = %+v", ident)
	}
	if len(ident.RoleTags) != 1 || ident.RoleTags[0] != "applicant" {
		t.Fatalf("roles = %v", ident.RoleTags)
	}
}

func TestAuth_Login_RejectionIsDisplayable(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid credentials"}`))
	})

	_, err := NewAuth(gw).Login(context.Background(), "a@x.com", "bad")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if err.Error() != "Invalid credentials" {
		t.Fatalf("message = %q, want backend text verbatim", err.Error())
	}
}

func TestAuth_Register_SendsRoleFlags(t *testing.T) {
	var got map[string]any
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/register/" {
			t.Errorf("path = %s", r.URL.Path)
		}
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"user_id":9,"email":"new@x.com","role":["employer","applicant"]}`))
	})

	ident, err := NewAuth(gw).Register(context.Background(), ports.RegisterInput{
		Email:          "new@x.com",
		Password:       "pw",
		WantsEmployer:  true,
		WantsApplicant: true,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got["is_employer"] != true || got["is_applicant"] != true {
		t.Fatalf("payload = %v", got)
	}
	if len(ident.RoleTags) != 2 {
		t.Fatalf("roles = %v", ident.RoleTags)
	}
}

func TestAuth_NetworkFailurePassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	gw := gateway.New(srv.URL, noCreds{}, zerolog.Nop())

	_, err := NewAuth(gw).Login(context.Background(), "a@x.com", "pw")
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("network failure must not look like bad credentials")
	}
}
