package domain

import (
	"encoding/json"
	"strconv"
	"time"
)

// Salary is a currency-agnostic numeric amount. The backend serializes
// decimals either as JSON numbers or as quoted strings depending on the
// endpoint, so unmarshalling accepts both; marshalling always emits a number.
type Salary float64

func (s Salary) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(s), 'f', -1, 64)), nil
}

func (s *Salary) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		*s = Salary(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Salary(v)
	return nil
}

// JobPosting is a job advertised by an employer. Readable by anyone,
// including anonymous visitors.
type JobPosting struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Salary      Salary    `json:"salary"`
	PostedAt    time.Time `json:"posted_at"`
	EmployerID  int64     `json:"employer"`
}
