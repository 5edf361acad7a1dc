package report

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Mukesh1q2/LIMS-sub001/core"
)

// Report describes a generated report artifact, not its content.
type Report struct {
	ID          string    `json:"id" db:"id"` // uuid
	Name        string    `json:"name" db:"name"`
	Type        string    `json:"type" db:"type"`
	GeneratedAt time.Time `json:"generatedAt" db:"generated_at"` // UTC
	GeneratedBy string    `json:"generatedBy" db:"generated_by"`
	Format      string    `json:"format" db:"format"`
}

type NewReport struct {
	Name   string `json:"name" validate:"required"`
	Type   string `json:"type" validate:"required,oneof=attendance fees library admissions custom"`
	Format string `json:"format" validate:"omitempty,oneof=pdf csv xlsx"`
}

func (nr *NewReport) Validate(validate *validator.Validate) error {
	nr.Name = core.CleanString(nr.Name)
	return validate.Struct(nr)
}

type QueryFilter struct {
	Search   string `query:"search"`
	Type     string `query:"type"`
	DateFrom time.Time
	DateTo   time.Time
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Type == "" && qf.DateFrom.IsZero() && qf.DateTo.IsZero()
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

func (qf *QueryFilter) Match(r Report) bool {
	if qf.Search != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(qf.Search)) {
		return false
	}
	if qf.Type != "" && r.Type != qf.Type {
		return false
	}
	if !qf.DateFrom.IsZero() && r.GeneratedAt.Before(qf.DateFrom) {
		return false
	}
	if !qf.DateTo.IsZero() && r.GeneratedAt.After(qf.DateTo) {
		return false
	}
	return true
}
