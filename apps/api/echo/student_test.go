package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/trezcool/mahudhurio/core/student"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func Test_studentApi_studentRegister(t *testing.T) {
	e := setup(t)
	sch := testutil.CreateSchool(t, e.schoolRepo, "Springfield High", "a", 0, 0)
	tch := testutil.CreateTeacher(t, e.teacherRepo, "Edna", "edna@springfield.cd", "s3cret!", sch)

	req, rec := newRequest(http.MethodPost, "/api/student/register", marshallObj(t, student.NewStudent{
		Name:        "Bart Simpson",
		Email:       "bart@springfield.cd",
		Password:    "s3cret!",
		TeacherCode: tch.Code,
		ParentEmail: "homer@springfield.cd",
		ParentPhone: "+243811234567",
	}))
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusCreated)

	data := decodeMap(t, rec)
	stu, ok := data["student"].(map[string]interface{})
	if !ok {
		t.Fatalf("student missing in %v", data)
	}
	if stu["teacher_id"] != tch.ID {
		t.Errorf("teacher_id = %v; want %v", stu["teacher_id"], tch.ID)
	}
	if _, leaked := stu["password_hash"]; leaked {
		t.Error("password_hash leaked in response")
	}

	// parent email is required
	req, rec = newRequest(http.MethodPost, "/api/student/register", marshallObj(t, student.NewStudent{
		Name: "Lisa", Email: "lisa@springfield.cd", Password: "s3cret!", TeacherCode: tch.Code,
	}))
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusBadRequest)
	if data = decodeMap(t, rec); data["parent_email"] == nil {
		t.Errorf("want a parent_email field error; got %v", data)
	}
}

func Test_studentApi_studentQuery(t *testing.T) {
	e := setup(t)
	sch := testutil.CreateSchool(t, e.schoolRepo, "Springfield High", "a", 0, 0)
	tch := testutil.CreateTeacher(t, e.teacherRepo, "Edna", "edna@springfield.cd", "s3cret!", sch)
	other := testutil.CreateTeacher(t, e.teacherRepo, "Hoover", "hoover@springfield.cd", "s3cret!", sch)
	bart := testutil.CreateStudent(t, e.studentRepo, "Bart", "bart@springfield.cd", "homer@springfield.cd", "", "s3cret!", tch)
	testutil.CreateStudent(t, e.studentRepo, "Nelson", "nelson@springfield.cd", "mrs.muntz@springfield.cd", "", "s3cret!", other)

	// auth required
	req, rec := newRequest(http.MethodGet, "/api/student")
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusUnauthorized)

	// teacher role required
	req, rec = newAuthRequest(http.MethodGet, "/api/student", studentToken(t, bart))
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusForbidden)

	// own roster only
	req, rec = newAuthRequest(http.MethodGet, "/api/student", teacherToken(t, tch))
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusOK)
	roster := decodeList(t, rec)
	if len(roster) != 1 {
		t.Fatalf("len = %d; want 1", len(roster))
	}
	if got := roster[0].(map[string]interface{})["id"]; got != bart.ID {
		t.Errorf("id = %v; want %v", got, bart.ID)
	}
}
