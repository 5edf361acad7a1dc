package echoapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Mukesh1q2/LIMS-sub001/core"
	"github.com/Mukesh1q2/LIMS-sub001/core/fee"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

type feeApi struct {
	svc      *fee.Service
	validate *validator.Validate
}

func registerFeeAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := feeApi{
		svc:      deps.FeeSvc,
		validate: deps.Validate,
	}

	fg := g.Group("/fees", jwt)
	fg.GET("", api.query, requirePermission(user.ResourceFees, user.ActionView))
	fg.POST("", api.record, requirePermission(user.ResourceFees, user.ActionCreate))
	fg.GET("/summary", api.summary, requirePermission(user.ResourceFees, user.ActionView))

	dg := fg.Group("/:id")
	dg.GET("", api.retrieve, requirePermission(user.ResourceFees, user.ActionView))
	dg.PUT("", api.update, requirePermission(user.ResourceFees, user.ActionEdit))
	dg.DELETE("", api.destroy, requirePermission(user.ResourceFees, user.ActionDelete))
}

func (api *feeApi) query(ctx echo.Context) error {
	filter := new(fee.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return respondList(ctx, []fee.Payment{}, 0)
	}

	payments, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying fee payments")
	}
	return respondList(ctx, payments, len(payments))
}

func (api *feeApi) record(ctx echo.Context) error {
	var data fee.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	p, err := api.svc.Record(data)
	if err != nil {
		return errors.Wrap(err, "recording fee payment")
	}
	return respondCreated(ctx, p)
}

// summary reports paid/pending counts and amounts for one month,
// defaulting to the current one.
func (api *feeApi) summary(ctx echo.Context) error {
	month := ctx.QueryParam("month")
	if month == "" {
		month = core.NowFunc().UTC().Format(core.MonthFormat)
	}

	sum, err := api.svc.Summarize(month)
	if err != nil {
		return errors.Wrap(err, "summarizing fee payments")
	}
	return respondOK(ctx, sum)
}

func (api *feeApi) retrieve(ctx echo.Context) error {
	p, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding fee payment by ID")
	}
	return respondOK(ctx, p)
}

func (api *feeApi) update(ctx echo.Context) error {
	var data fee.UpdatePayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePayment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating fee payment")
	}
	return respondOK(ctx, p)
}

func (api *feeApi) destroy(ctx echo.Context) error {
	p, err := api.svc.Delete(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "deleting fee payment")
	}
	return respondOK(ctx, p)
}
