package echoapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/seat"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

type seatApi struct {
	svc      *seat.Service
	validate *validator.Validate
}

func registerSeatAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := seatApi{
		svc:      deps.SeatSvc,
		validate: deps.Validate,
	}

	sg := g.Group("/seats", jwt)
	sg.GET("", api.query, requirePermission(user.ResourceSeats, user.ActionView))
	sg.POST("", api.create, requirePermission(user.ResourceSeats, user.ActionCreate))

	dg := sg.Group("/:id")
	dg.GET("", api.retrieve, requirePermission(user.ResourceSeats, user.ActionView))
	dg.PUT("", api.update, requirePermission(user.ResourceSeats, user.ActionEdit))
	dg.DELETE("", api.destroy, requirePermission(user.ResourceSeats, user.ActionDelete))
	dg.PUT("/assign", api.assign, requirePermission(user.ResourceSeats, user.ActionEdit))
	dg.PUT("/release", api.release, requirePermission(user.ResourceSeats, user.ActionEdit))
}

func (api *seatApi) query(ctx echo.Context) error {
	filter := new(seat.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return respondList(ctx, []seat.Seat{}, 0)
	}

	seats, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying seats")
	}
	return respondList(ctx, seats, len(seats))
}

func (api *seatApi) create(ctx echo.Context) error {
	var data seat.NewSeat
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSeat")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	s, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating seat")
	}
	return respondCreated(ctx, s)
}

func (api *seatApi) retrieve(ctx echo.Context) error {
	s, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding seat by ID")
	}
	return respondOK(ctx, s)
}

func (api *seatApi) update(ctx echo.Context) error {
	var data seat.UpdateSeat
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateSeat")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating seat")
	}
	return respondOK(ctx, s)
}

func (api *seatApi) destroy(ctx echo.Context) error {
	s, err := api.svc.Delete(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "deleting seat")
	}
	return respondOK(ctx, s)
}

func (api *seatApi) assign(ctx echo.Context) error {
	var data AssignSeatRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignSeatRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	s, err := api.svc.Assign(ctx.Param("id"), data.StudentID)
	if err != nil {
		return errors.Wrap(err, "assigning seat")
	}
	return respondOK(ctx, s)
}

func (api *seatApi) release(ctx echo.Context) error {
	s, err := api.svc.Release(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "releasing seat")
	}
	return respondOK(ctx, s)
}

type AssignSeatRequest struct {
	StudentID string `json:"studentId" validate:"required"`
}

func (ar *AssignSeatRequest) Validate(validate *validator.Validate) error {
	ar.StudentID = core.CleanString(ar.StudentID)
	return validate.Struct(ar)
}
