package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core/teacher"
)

type (
	teacherApi struct {
		svc      teacher.Service
		validate *validator.Validate
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(lr)
}

func registerTeacherAPI(g *echo.Group, deps ServerDeps) {
	api := teacherApi{svc: deps.TeacherSvc, validate: deps.Validate}

	tg := g.Group("/teacher")
	tg.POST("/register", api.teacherRegister)
	tg.POST("/login", api.teacherLogin)
}

func (api *teacherApi) teacherRegister(ctx echo.Context) error {
	data := new(teacher.NewTeacher)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tch, err := api.svc.Register(ctx.Request().Context(), *data)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, echo.Map{
		"message":    "Teacher registered successfully",
		"teacher_id": tch.Code,
	})
}

func (api *teacherApi) teacherLogin(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tch, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		if err == teacher.ErrInvalidCredentials {
			return errAuthenticationFailed
		}
		return err
	}

	token, err := GenerateToken(GetTeacherClaims(tch))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}
