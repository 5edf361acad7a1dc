package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the uniform envelope returned on every API call.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func respond(ctx echo.Context, code int, data interface{}) error {
	return ctx.JSON(code, Response{Success: true, Data: data})
}

func respondOK(ctx echo.Context, data interface{}) error {
	return respond(ctx, http.StatusOK, data)
}

func respondCreated(ctx echo.Context, data interface{}) error {
	return respond(ctx, http.StatusCreated, data)
}

// respondList always sends the collection count, an empty list included.
func respondList(ctx echo.Context, data interface{}, count int) error {
	return ctx.JSON(http.StatusOK, Response{Success: true, Data: data, Count: &count})
}
