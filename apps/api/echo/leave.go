package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/leave"
	"github.com/trezcool/mahudhurio/core/student"
)

type leaveApi struct {
	svc      leave.Service
	validate *validator.Validate
}

func registerLeaveAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := leaveApi{svc: deps.LeaveSvc, validate: deps.Validate}

	lg := g.Group("/leave", jwt)
	lg.POST("/request", api.leaveRequest, roleMiddleware(core.RoleStudent))
	lg.GET("/requests", api.leaveQuery, roleMiddleware(core.RoleTeacher))
	lg.PUT("/approve/:id", api.leaveDecide, roleMiddleware(core.RoleTeacher))
	lg.GET("/my-requests", api.leaveMine, roleMiddleware(core.RoleStudent))
}

func (api *leaveApi) leaveRequest(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	data := new(leave.NewLeave)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	lv, err := api.svc.Request(ctx.Request().Context(), claims.Subject, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, lv)
}

func (api *leaveApi) leaveQuery(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	leaves, err := api.svc.ForTeacher(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, leaves)
}

func (api *leaveApi) leaveDecide(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	data := new(leave.Decision)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	lv, err := api.svc.Decide(ctx.Request().Context(), claims.Subject, ctx.Param("id"), *data)
	if err != nil {
		switch err {
		case leave.ErrNotFound, student.ErrNotFound:
			return errHttpNotFound
		case leave.ErrNotOwnStudent:
			return errHttpForbidden
		}
		return err
	}
	return ctx.JSON(http.StatusOK, lv)
}

func (api *leaveApi) leaveMine(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	leaves, err := api.svc.ForStudent(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, leaves)
}
