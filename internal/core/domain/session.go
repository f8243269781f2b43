package domain

// Role tags carried by a session. Non-exclusive: one account may hold both.
const (
	RoleEmployer  = "employer"
	RoleApplicant = "applicant"
)

// Session is the client's record of the currently authenticated actor.
// An anonymous client is represented by the absence of a Session (nil),
// never by a zero-valued one.
type Session struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	// RoleTags mirrors the role list reported by the backend at login.
	// An empty list is a valid session that can act as neither role.
	RoleTags []string `json:"role"`
	// Credential is the Basic payload (base64 of email:password) resent on
	// every authenticated request. Kept out of every serialized form.
	Credential string `json:"-"`
}

// HasRole reports whether the session carries the given role tag.
func (s *Session) HasRole(tag string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.RoleTags {
		if r == tag {
			return true
		}
	}
	return false
}

// IsEmployer reports whether the session may act as an employer.
func (s *Session) IsEmployer() bool { return s.HasRole(RoleEmployer) }

// IsApplicant reports whether the session may act as an applicant.
func (s *Session) IsApplicant() bool { return s.HasRole(RoleApplicant) }
