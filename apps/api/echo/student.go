package echoapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Mukesh1q2/LIMS-sub001/core/student"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

type studentApi struct {
	svc      *student.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{
		svc:      deps.StudentSvc,
		validate: deps.Validate,
	}

	sg := g.Group("/students", jwt)
	sg.GET("", api.query, requirePermission(user.ResourceStudents, user.ActionView))
	sg.POST("", api.create, requirePermission(user.ResourceStudents, user.ActionCreate))

	dg := sg.Group("/:id")
	dg.GET("", api.retrieve, requirePermission(user.ResourceStudents, user.ActionView))
	dg.PUT("", api.update, requirePermission(user.ResourceStudents, user.ActionEdit))
	dg.DELETE("", api.destroy, requirePermission(user.ResourceStudents, user.ActionDelete))
}

func (api *studentApi) query(ctx echo.Context) error {
	filter := new(student.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return respondList(ctx, []student.Student{}, 0)
	}
	filter.Clean()

	students, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return respondList(ctx, students, len(students))
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	stu, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return respondCreated(ctx, stu)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	stu, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding student by ID")
	}
	return respondOK(ctx, stu)
}

func (api *studentApi) update(ctx echo.Context) error {
	stu, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding student by ID")
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(stu, api.validate, api.svc); err != nil {
		return err
	}

	stu, err = api.svc.Update(stu.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return respondOK(ctx, stu)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	stu, err := api.svc.Delete(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return respondOK(ctx, stu)
}
