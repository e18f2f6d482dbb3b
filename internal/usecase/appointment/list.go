package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-platform/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-platform/internal/dto"
	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/httpresp"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists appointments under the given filters, newest first by
// date and time unless the caller asks otherwise.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.Filters,
	p domain.Page,
) (*httpresp.Page[dto.AppointmentDetails], error) {

	if f.Status != "" {
		status, err := domain.ParseStatus(f.Status)
		if err != nil {
			return nil, err
		}
		f.Status = string(status)
	}

	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultPageSize
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	if p.SortBy == "" {
		p.SortBy = "date"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "desc"
	}

	apps, total, err := uc.repo.List(ctx, f, p)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodePersistence, "failed to list appointments")
	}

	page := httpresp.NewPage(dto.NewAppointmentDetailsList(apps), total, p.Page, p.Limit)
	return &page, nil
}
