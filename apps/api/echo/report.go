package echoapi

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/report"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

type reportApi struct {
	svc      *report.Service
	usrSvc   *user.Service
	validate *validator.Validate
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := reportApi{
		svc:      deps.ReportSvc,
		usrSvc:   deps.UserSvc,
		validate: deps.Validate,
	}

	rg := g.Group("/reports", jwt)
	rg.GET("", api.query, requirePermission(user.ResourceReports, user.ActionView))
	rg.POST("", api.generate, requirePermission(user.ResourceReports, user.ActionCreate))

	dg := rg.Group("/:id")
	dg.GET("", api.retrieve, requirePermission(user.ResourceReports, user.ActionView))
	dg.DELETE("", api.destroy, requirePermission(user.ResourceReports, user.ActionDelete))
}

func (api *reportApi) query(ctx echo.Context) error {
	// date bounds are calendar days; the binder has no time.Time support
	filter := report.QueryFilter{
		Search: ctx.QueryParam("search"),
		Type:   ctx.QueryParam("type"),
	}
	filter.Clean()
	if from := ctx.QueryParam("dateFrom"); from != "" {
		t, err := time.Parse(core.DateFormat, from)
		if err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "dateFrom", Error: "invalid date"})
		}
		filter.DateFrom = t
	}
	if to := ctx.QueryParam("dateTo"); to != "" {
		t, err := time.Parse(core.DateFormat, to)
		if err != nil {
			return core.NewValidationError(err, core.FieldError{Field: "dateTo", Error: "invalid date"})
		}
		// inclusive upper bound
		filter.DateTo = t.Add(24*time.Hour - time.Nanosecond)
	}

	reports, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "querying reports")
	}
	return respondList(ctx, reports, len(reports))
}

func (api *reportApi) generate(ctx echo.Context) error {
	var data report.NewReport
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewReport")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	generatedBy := ""
	if usr, err := getContextUser(ctx, api.usrSvc); err == nil {
		generatedBy = usr.Name
	}

	r, err := api.svc.Generate(data, generatedBy)
	if err != nil {
		return errors.Wrap(err, "generating report")
	}
	return respondCreated(ctx, r)
}

func (api *reportApi) retrieve(ctx echo.Context) error {
	r, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding report by ID")
	}
	return respondOK(ctx, r)
}

func (api *reportApi) destroy(ctx echo.Context) error {
	r, err := api.svc.Delete(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "deleting report")
	}
	return respondOK(ctx, r)
}
