package echoapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/student"
)

type attendanceApi struct {
	svc      attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := attendanceApi{svc: deps.AttendanceSvc, validate: deps.Validate}

	ag := g.Group("/attendance", jwt)
	ag.POST("/mark", api.attendanceMark, roleMiddleware(core.RoleTeacher))
	ag.POST("/mark-bulk", api.attendanceMarkBulk, roleMiddleware(core.RoleTeacher))
	ag.POST("/facial-mark", api.attendanceFacialMark, roleMiddleware(core.RoleTeacher))
	ag.POST("/upload-face", api.attendanceUploadFace, roleMiddleware(core.RoleTeacher))
	ag.GET("/me", api.attendanceMine, roleMiddleware(core.RoleStudent))
	ag.GET("/teacher", api.attendanceRoster, roleMiddleware(core.RoleTeacher))
	ag.GET("/report", api.attendanceReport, roleMiddleware(core.RoleTeacher, core.RoleAdmin))
}

func (api *attendanceApi) attendanceMark(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	data := new(attendance.MarkAttendance)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	att, err := api.svc.Mark(ctx.Request().Context(), claims.Subject, *data)
	if err != nil {
		switch err {
		case student.ErrNotFound:
			return errHttpNotFound
		case attendance.ErrNotOwnStudent:
			return errHttpForbidden
		}
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"message":    "Attendance recorded",
		"attendance": att,
	})
}

func (api *attendanceApi) attendanceMarkBulk(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	data := new(attendance.MarkBulkAttendance)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	results, err := api.svc.MarkBulk(ctx.Request().Context(), claims.Subject, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"results": results})
}

func (api *attendanceApi) attendanceFacialMark(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	data := new(attendance.FacialMark)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	stu, att, err := api.svc.FacialMark(ctx.Request().Context(), claims.Subject, *data)
	if err != nil {
		switch err {
		case attendance.ErrOutOfRange:
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case attendance.ErrNoMatch:
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"message":    "Attendance marked successfully",
		"student":    stu,
		"attendance": att,
	})
}

func (api *attendanceApi) attendanceUploadFace(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	data := new(attendance.UploadFaceData)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if _, err = api.svc.UploadFaceData(ctx.Request().Context(), claims.Subject, *data); err != nil {
		switch err {
		case student.ErrNotFound:
			return errHttpNotFound
		case attendance.ErrNotOwnStudent:
			return errHttpForbidden
		}
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Face data saved"})
}

func (api *attendanceApi) attendanceMine(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	records, err := api.svc.ForStudent(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) attendanceRoster(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	roster, err := api.svc.ForTeacher(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, roster)
}

func (api *attendanceApi) attendanceReport(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	qf := attendance.QueryFilter{StudentID: ctx.QueryParam("studentId")}
	if qf.From, err = parseDateParam(ctx.QueryParam("fromDate"), "fromDate"); err != nil {
		return err
	}
	if qf.To, err = parseDateParam(ctx.QueryParam("toDate"), "toDate"); err != nil {
		return err
	}

	records, err := api.svc.Report(
		ctx.Request().Context(),
		attendance.Actor{Role: claims.Role, ID: claims.Subject},
		qf,
	)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, records)
}

func parseDateParam(val, field string) (time.Time, error) {
	if val == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		// dates alone are accepted too
		if t, err = time.Parse("2006-01-02", val); err != nil {
			return time.Time{}, core.NewValidationError(err, core.FieldError{Field: field, Error: "invalid date"})
		}
	}
	return t, nil
}
