package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/school"
)

type schoolApi struct {
	svc      school.Service
	validate *validator.Validate
}

func registerSchoolAPI(g *echo.Group, deps ServerDeps) {
	api := schoolApi{svc: deps.SchoolSvc, validate: deps.Validate}

	sg := g.Group("/school")
	sg.POST("/register", api.schoolRegister)
	sg.GET("", api.schoolQuery)
}

func (api *schoolApi) schoolRegister(ctx echo.Context) error {
	data := new(school.NewSchool)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sch, existing, err := api.svc.Register(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}

	if existing {
		return ctx.JSON(http.StatusOK, echo.Map{
			"message":     "School already registered",
			"school":      sch,
			"is_existing": true,
		})
	}
	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":     "School registered successfully",
		"school":      sch,
		"is_existing": false,
	})
}

func (api *schoolApi) schoolQuery(ctx echo.Context) error {
	schools, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, schools)
}
