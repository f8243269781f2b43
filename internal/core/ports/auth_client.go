package ports

import "context"

// Identity is the backend's answer to a successful login or registration.
type Identity struct {
	UserID   int64
	Email    string
	RoleTags []string
}

// RegisterInput carries everything the registration endpoint accepts.
type RegisterInput struct {
	Email          string
	Password       string
	WantsEmployer  bool
	WantsApplicant bool
}

// AuthClient wraps the backend's user endpoints. Logout is deliberately
// absent: the backend holds no session, so logging out is purely a local
// concern of the session store.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*Identity, error)
	Register(ctx context.Context, input RegisterInput) (*Identity, error)
}
