package domain

import (
	"encoding/json"
	"time"
)

// ApplicationStatus is the review state of an application. Only the employer
// who owns the job may move it; the applicant only observes it.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "pending"
	StatusReviewing   ApplicationStatus = "reviewing"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusAccepted    ApplicationStatus = "accepted"
	StatusRejected    ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every status the backend accepts, in review order.
var ApplicationStatuses = []ApplicationStatus{
	StatusPending,
	StatusReviewing,
	StatusShortlisted,
	StatusAccepted,
	StatusRejected,
}

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// JobRef points at the job an application targets. List payloads carry a bare
// numeric id, detail payloads may embed the full posting; both decode into
// this one type so callers never shape-sniff.
type JobRef struct {
	ID int64
	// Embedded is non-nil only when the backend inlined the posting.
	Embedded *JobPosting
}

func (r JobRef) MarshalJSON() ([]byte, error) {
	if r.Embedded != nil {
		return json.Marshal(r.Embedded)
	}
	return json.Marshal(r.ID)
}

func (r *JobRef) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*r = JobRef{ID: id}
		return nil
	}
	var job JobPosting
	if err := json.Unmarshal(data, &job); err != nil {
		return err
	}
	*r = JobRef{ID: job.ID, Embedded: &job}
	return nil
}

// ApplicantProfile is the subset of account data the backend embeds next to
// an application when the caller is allowed to see the applicant.
type ApplicantProfile struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// ApplicantRef mirrors JobRef for the filing applicant: bare id or embedded
// profile.
type ApplicantRef struct {
	ID       int64
	Embedded *ApplicantProfile
}

func (r ApplicantRef) MarshalJSON() ([]byte, error) {
	if r.Embedded != nil {
		return json.Marshal(r.Embedded)
	}
	return json.Marshal(r.ID)
}

func (r *ApplicantRef) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*r = ApplicantRef{ID: id}
		return nil
	}
	var p ApplicantProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = ApplicantRef{ID: p.ID, Embedded: &p}
	return nil
}

// Application ties one applicant to one job, with at most one application per
// pair (the backend enforces uniqueness).
type Application struct {
	ID          int64             `json:"id"`
	Job         JobRef            `json:"job"`
	Applicant   ApplicantRef      `json:"applicant"`
	Status      ApplicationStatus `json:"status"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	AppliedAt   time.Time         `json:"applied_at"`
	HasResume   bool              `json:"has_resume"`
	// ResumeURL is populated only by the single-item fetch; list payloads
	// omit it and callers resolve it lazily.
	ResumeURL string `json:"resume_url,omitempty"`
}
