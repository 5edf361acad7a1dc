package report

import (
	"github.com/google/uuid"

	"github.com/Mukesh1q2/LIMS-sub001/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("report not found")
)

type (
	Repository interface {
		CreateReport(r Report) (Report, error)
		QueryAllReports() ([]Report, error)
		GetReportByID(id string) (Report, error)
		FilterReports(filter QueryFilter) ([]Report, error)
		DeleteReport(id string) (Report, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Generate records a report artifact's metadata. IDs are random uuids;
// report names carry no sequence convention worth preserving.
func (svc *Service) Generate(nr NewReport, generatedBy string) (Report, error) {
	r := Report{
		ID:          uuid.New().String(),
		Name:        nr.Name,
		Type:        nr.Type,
		GeneratedAt: core.NowFunc().UTC(),
		GeneratedBy: generatedBy,
		Format:      nr.Format,
	}
	if r.Format == "" {
		r.Format = "pdf"
	}
	return svc.repo.CreateReport(r)
}

func (svc *Service) GetByID(id string) (Report, error) {
	return svc.repo.GetReportByID(id)
}

func (svc *Service) Filter(filter QueryFilter) ([]Report, error) {
	return svc.repo.FilterReports(filter)
}

func (svc *Service) Delete(id string) (Report, error) {
	return svc.repo.DeleteReport(id)
}
