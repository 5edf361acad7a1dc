package echoapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Mukesh1q2/LIMS-sub001/core/attendance"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := attendanceApi{
		svc:      deps.AttendanceSvc,
		validate: deps.Validate,
	}

	ag := g.Group("/attendance", jwt)
	ag.GET("", api.query, requirePermission(user.ResourceAttendance, user.ActionView))
	ag.POST("", api.mark, requirePermission(user.ResourceAttendance, user.ActionCreate))

	dg := ag.Group("/:id")
	dg.GET("", api.retrieve, requirePermission(user.ResourceAttendance, user.ActionView))
	dg.PUT("", api.update, requirePermission(user.ResourceAttendance, user.ActionEdit))
	dg.DELETE("", api.destroy, requirePermission(user.ResourceAttendance, user.ActionDelete))
}

func (api *attendanceApi) query(ctx echo.Context) error {
	filter := new(attendance.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return respondList(ctx, []attendance.Entry{}, 0)
	}

	entries, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying attendance")
	}
	return respondList(ctx, entries, len(entries))
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	var data attendance.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	entry, err := api.svc.Mark(data)
	if err != nil {
		return errors.Wrap(err, "marking attendance")
	}
	return respondCreated(ctx, entry)
}

func (api *attendanceApi) retrieve(ctx echo.Context) error {
	entry, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding attendance by ID")
	}
	return respondOK(ctx, entry)
}

func (api *attendanceApi) update(ctx echo.Context) error {
	var data attendance.UpdateAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAttendance")
	}

	entry, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating attendance")
	}
	return respondOK(ctx, entry)
}

func (api *attendanceApi) destroy(ctx echo.Context) error {
	entry, err := api.svc.Delete(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "deleting attendance")
	}
	return respondOK(ctx, entry)
}
