package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/student"
)

type studentApi struct {
	svc      student.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{svc: deps.StudentSvc, validate: deps.Validate}

	sg := g.Group("/student")
	sg.POST("/register", api.studentRegister)
	sg.POST("/login", api.studentLogin)
	sg.GET("", api.studentQuery, jwt, roleMiddleware(core.RoleTeacher))
}

func (api *studentApi) studentRegister(ctx echo.Context) error {
	data := new(student.NewStudent)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	stu, err := api.svc.Register(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message": "Student registered successfully",
		"student": stu,
	})
}

func (api *studentApi) studentLogin(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	stu, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if err == student.ErrInvalidCredentials {
			return errAuthenticationFailed
		}
		return err
	}

	token, err := GenerateToken(GetStudentClaims(stu))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

// studentQuery returns the authenticated teacher's roster.
func (api *studentApi) studentQuery(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	students, err := api.svc.ForTeacher(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, students)
}
