package echoapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/trezcool/mahudhurio/apps/api/echo"
	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/leave"
	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/student"
	"github.com/trezcool/mahudhurio/core/teacher"
	emailsvc "github.com/trezcool/mahudhurio/services/email"
	logsvc "github.com/trezcool/mahudhurio/services/logger"
	smssvc "github.com/trezcool/mahudhurio/services/sms"
	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
)

type env struct {
	app Server

	schoolRepo     school.Repository
	teacherRepo    teacher.Repository
	studentRepo    student.Repository
	attendanceRepo attendance.Repository
	leaveRepo      leave.Repository
}

func setup(t *testing.T) *env {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}

	e := &env{
		schoolRepo:     dummydb.NewSchoolRepository(db),
		teacherRepo:    dummydb.NewTeacherRepository(db),
		studentRepo:    dummydb.NewStudentRepository(db),
		attendanceRepo: dummydb.NewAttendanceRepository(db),
		leaveRepo:      dummydb.NewLeaveRepository(db),
	}

	conf := &core.Config{
		TestMode:  true,
		AppName:   "Mahudhurio",
		SecretKey: []byte("test-secret"),
	}
	conf.Server.JWTExpirationDelta = 10 * time.Minute

	logger := logsvc.NewStdLogger(log.New(io.Discard, "", 0))
	mailSvc := emailsvc.NewDummyService()
	smsSvc := smssvc.NewDummyService()
	validate, translator := core.NewValidator()

	e.app = NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		Validate:       validate,
		Translator:     translator,
		SchoolSvc:      school.NewService(e.schoolRepo),
		TeacherSvc:     teacher.NewService(e.teacherRepo, e.schoolRepo, mailSvc),
		StudentSvc:     student.NewService(e.studentRepo, e.teacherRepo),
		AttendanceSvc:  attendance.NewService(e.attendanceRepo, e.studentRepo, e.teacherRepo, e.schoolRepo, mailSvc, smsSvc, logger),
		LeaveSvc:       leave.NewService(e.leaveRepo, e.studentRepo),
		DisableReqLogs: true,
	})
	return e
}

type httpErr struct {
	Error string `json:"error"`
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func teacherToken(t *testing.T, tch teacher.Teacher) string {
	t.Helper()
	token, err := GenerateToken(GetTeacherClaims(tch))
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}
	return token
}

func studentToken(t *testing.T, stu student.Student) string {
	t.Helper()
	token, err := GenerateToken(GetStudentClaims(stu))
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}
	return token
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := GenerateToken(GetAdminClaims("admin"))
	if err != nil {
		t.Fatalf("GenerateToken(): %v", err)
	}
	return token
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("json.Marshal(): %v", err)
	}
	return data
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("json.Unmarshal(%s): %v", rec.Body.String(), err)
	}
	return m
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var l []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatalf("json.Unmarshal(%s): %v", rec.Body.String(), err)
	}
	return l
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("code = %v; want %v; body %s", rec.Code, want, rec.Body.String())
	}
}
