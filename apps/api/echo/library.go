package echoapi

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Mukesh1q2/LIMS-sub001/core/library"
	"github.com/Mukesh1q2/LIMS-sub001/core/user"
)

type libraryApi struct {
	svc      *library.Service
	validate *validator.Validate
}

func registerLibraryAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := libraryApi{
		svc:      deps.LibrarySvc,
		validate: deps.Validate,
	}

	lg := g.Group("/library", jwt)

	bg := lg.Group("/books")
	bg.GET("", api.queryBooks, requirePermission(user.ResourceLibrary, user.ActionView))
	bg.POST("", api.createBook, requirePermission(user.ResourceLibrary, user.ActionCreate))
	bdg := bg.Group("/:id")
	bdg.GET("", api.retrieveBook, requirePermission(user.ResourceLibrary, user.ActionView))
	bdg.PUT("", api.updateBook, requirePermission(user.ResourceLibrary, user.ActionEdit))
	bdg.DELETE("", api.destroyBook, requirePermission(user.ResourceLibrary, user.ActionDelete))

	ig := lg.Group("/issues")
	ig.GET("", api.queryIssues, requirePermission(user.ResourceLibrary, user.ActionView))
	ig.POST("", api.issueBook, requirePermission(user.ResourceLibrary, user.ActionCreate))
	ig.POST("/notify", api.notifyOverdue, requirePermission(user.ResourceLibrary, user.ActionEdit))
	ig.GET("/:id", api.retrieveIssue, requirePermission(user.ResourceLibrary, user.ActionView))
	ig.PUT("/:id/return", api.returnBook, requirePermission(user.ResourceLibrary, user.ActionEdit))
}

// Books

func (api *libraryApi) queryBooks(ctx echo.Context) error {
	filter := new(library.BookQueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return respondList(ctx, []library.Book{}, 0)
	}
	filter.Clean()

	books, err := api.svc.FilterBooks(*filter)
	if err != nil {
		return errors.Wrap(err, "querying books")
	}
	return respondList(ctx, books, len(books))
}

func (api *libraryApi) createBook(ctx echo.Context) error {
	var data library.NewBook
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBook")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	b, err := api.svc.CreateBook(data)
	if err != nil {
		return errors.Wrap(err, "creating book")
	}
	return respondCreated(ctx, b)
}

func (api *libraryApi) retrieveBook(ctx echo.Context) error {
	b, err := api.svc.GetBookByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding book by ID")
	}
	return respondOK(ctx, b)
}

func (api *libraryApi) updateBook(ctx echo.Context) error {
	var data library.UpdateBook
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateBook")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	b, err := api.svc.UpdateBook(ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating book")
	}
	return respondOK(ctx, b)
}

func (api *libraryApi) destroyBook(ctx echo.Context) error {
	b, err := api.svc.DeleteBook(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "deleting book")
	}
	return respondOK(ctx, b)
}

// Issues

func (api *libraryApi) queryIssues(ctx echo.Context) error {
	filter := new(library.IssueQueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return respondList(ctx, []library.Issue{}, 0)
	}

	issues, err := api.svc.FilterIssues(*filter)
	if err != nil {
		return errors.Wrap(err, "querying book issues")
	}
	return respondList(ctx, issues, len(issues))
}

func (api *libraryApi) issueBook(ctx echo.Context) error {
	var data library.NewIssue
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewIssue")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	i, err := api.svc.IssueBook(data)
	if err != nil {
		return errors.Wrap(err, "issuing book")
	}
	return respondCreated(ctx, i)
}

func (api *libraryApi) retrieveIssue(ctx echo.Context) error {
	i, err := api.svc.GetIssueByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding book issue by ID")
	}
	return respondOK(ctx, i)
}

func (api *libraryApi) returnBook(ctx echo.Context) error {
	i, err := api.svc.ReturnBook(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "returning book")
	}
	return respondOK(ctx, i)
}

// notifyOverdue emails every student holding an overdue issue and
// returns the issues that were flagged.
func (api *libraryApi) notifyOverdue(ctx echo.Context) error {
	issues, err := api.svc.NotifyOverdue()
	if err != nil {
		return errors.Wrap(err, "notifying overdue issues")
	}
	return respondList(ctx, issues, len(issues))
}
