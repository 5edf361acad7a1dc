package inmem

import (
	"sync"

	"github.com/Mukesh1q2/LIMS-sub001/core/report"
)

type reportTable struct {
	mu   sync.RWMutex
	rows []*report.Report
}

type reportRepository struct {
	tbl *reportTable
}

var _ report.Repository = (*reportRepository)(nil) // interface compliance check

func NewReportRepository(db *DB) *reportRepository {
	return &reportRepository{tbl: db.reports}
}

func (repo *reportRepository) CreateReport(r report.Report) (report.Report, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	repo.tbl.rows = append(repo.tbl.rows, &r)
	return r, nil
}

func (repo *reportRepository) QueryAllReports() ([]report.Report, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	reports := make([]report.Report, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		reports = append(reports, *row)
	}
	return reports, nil
}

func (repo *reportRepository) GetReportByID(id string) (report.Report, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	for _, row := range repo.tbl.rows {
		if row.ID == id {
			return *row, nil
		}
	}
	return report.Report{}, report.ErrNotFound
}

func (repo *reportRepository) FilterReports(filter report.QueryFilter) ([]report.Report, error) {
	repo.tbl.mu.RLock()
	defer repo.tbl.mu.RUnlock()

	reports := make([]report.Report, 0, len(repo.tbl.rows))
	for _, row := range repo.tbl.rows {
		if filter.Match(*row) {
			reports = append(reports, *row)
		}
	}
	return reports, nil
}

func (repo *reportRepository) DeleteReport(id string) (report.Report, error) {
	repo.tbl.mu.Lock()
	defer repo.tbl.mu.Unlock()

	for i, row := range repo.tbl.rows {
		if row.ID == id {
			removed := *row
			repo.tbl.rows = append(repo.tbl.rows[:i], repo.tbl.rows[i+1:]...)
			return removed, nil
		}
	}
	return report.Report{}, report.ErrNotFound
}
