package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/trezcool/mahudhurio/core/teacher"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func Test_teacherApi_teacherRegister(t *testing.T) {
	e := setup(t)
	sch := testutil.CreateSchool(t, e.schoolRepo, "Springfield High", "a", 0, 0)

	req, rec := newRequest(http.MethodPost, "/api/teacher/register", marshallObj(t, teacher.NewTeacher{
		Name:       "Edna Krabappel",
		Email:      "edna@springfield.cd",
		Password:   "s3cret!",
		SchoolCode: sch.Code,
	}))
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusCreated)
	if data := decodeMap(t, rec); data["teacher_id"] != "SPR-001" {
		t.Errorf("teacher_id = %v; want SPR-001", data["teacher_id"])
	}

	// unknown school
	req, rec = newRequest(http.MethodPost, "/api/teacher/register", marshallObj(t, teacher.NewTeacher{
		Name: "X", Email: "x@test.cd", Password: "s3cret!", SchoolCode: "XYZ",
	}))
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusBadRequest)
	if data := decodeMap(t, rec); data["school_id"] == nil {
		t.Errorf("want a school_id field error; got %v", data)
	}

	// short password
	req, rec = newRequest(http.MethodPost, "/api/teacher/register", marshallObj(t, teacher.NewTeacher{
		Name: "X", Email: "y@test.cd", Password: "nope", SchoolCode: sch.Code,
	}))
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusBadRequest)
	if data := decodeMap(t, rec); data["password"] == nil {
		t.Errorf("want a password field error; got %v", data)
	}
}

func Test_teacherApi_teacherLogin(t *testing.T) {
	e := setup(t)
	sch := testutil.CreateSchool(t, e.schoolRepo, "Springfield High", "a", 0, 0)
	testutil.CreateTeacher(t, e.teacherRepo, "Edna", "edna@springfield.cd", "s3cret!", sch)

	req, rec := newRequest(http.MethodPost, "/api/teacher/login", marshallObj(t, map[string]string{
		"email": "edna@springfield.cd", "password": "s3cret!",
	}))
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusOK)
	if data := decodeMap(t, rec); data["token"] == nil || data["token"] == "" {
		t.Errorf("want a token; got %v", data)
	}

	tests := []struct {
		name  string
		email string
		pwd   string
	}{
		{name: "wrong password", email: "edna@springfield.cd", pwd: "nope!!"},
		{name: "unknown email", email: "nobody@springfield.cd", pwd: "s3cret!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/api/teacher/login", marshallObj(t, map[string]string{
				"email": tt.email, "password": tt.pwd,
			}))
			e.app.ServeHTTP(rec, req)
			checkCode(t, rec, http.StatusBadRequest)
			if data := decodeMap(t, rec); data["error"] != "authentication failed" {
				t.Errorf("error = %v; want %q", data["error"], "authentication failed")
			}
		})
	}
}
