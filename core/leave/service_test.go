package leave_test

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/mahudhurio/core/leave"
	"github.com/trezcool/mahudhurio/core/student"
	"github.com/trezcool/mahudhurio/core/teacher"
	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
	testutil "github.com/trezcool/mahudhurio/tests"
)

type fixture struct {
	svc   leave.Service
	tch   teacher.Teacher
	other teacher.Teacher
	bart  student.Student
	nelso student.Student
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}

	studentRepo := dummydb.NewStudentRepository(db)
	teacherRepo := dummydb.NewTeacherRepository(db)
	sch := testutil.CreateSchool(t, dummydb.NewSchoolRepository(db), "Springfield High", "a", 0, 0)

	f := &fixture{svc: leave.NewService(dummydb.NewLeaveRepository(db), studentRepo)}
	f.tch = testutil.CreateTeacher(t, teacherRepo, "Edna", "edna@springfield.cd", "s3cret!", sch)
	f.other = testutil.CreateTeacher(t, teacherRepo, "Hoover", "hoover@springfield.cd", "s3cret!", sch)
	f.bart = testutil.CreateStudent(t, studentRepo, "Bart", "bart@springfield.cd", "homer@springfield.cd", "", "s3cret!", f.tch)
	f.nelso = testutil.CreateStudent(t, studentRepo, "Nelson", "nelson@springfield.cd", "mrs.muntz@springfield.cd", "", "s3cret!", f.other)
	return f
}

func Test_service_Request(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	start := time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)
	lv, err := f.svc.Request(ctx, f.bart.ID, leave.NewLeave{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		Reason:    "family trip",
	})
	if err != nil {
		t.Fatalf("Request(): %v", err)
	}
	if lv.Status != leave.StatusPending {
		t.Errorf("Request() status = %v; want %v", lv.Status, leave.StatusPending)
	}
	if lv.StudentID != f.bart.ID {
		t.Errorf("Request() studentID = %q; want %q", lv.StudentID, f.bart.ID)
	}

	mine, err := f.svc.ForStudent(ctx, f.bart.ID)
	if err != nil {
		t.Fatalf("ForStudent(): %v", err)
	}
	if len(mine) != 1 || mine[0].ID != lv.ID {
		t.Errorf("ForStudent() = %+v; want just %q", mine, lv.ID)
	}
}

func Test_service_ForTeacher(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	start := time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)
	lv, err := f.svc.Request(ctx, f.bart.ID, leave.NewLeave{StartDate: start, EndDate: start, Reason: "sick"})
	if err != nil {
		t.Fatalf("Request(): %v", err)
	}
	if _, err = f.svc.Request(ctx, f.nelso.ID, leave.NewLeave{StartDate: start, EndDate: start, Reason: "sick"}); err != nil {
		t.Fatalf("Request(): %v", err)
	}

	leaves, err := f.svc.ForTeacher(ctx, f.tch.ID)
	if err != nil {
		t.Fatalf("ForTeacher(): %v", err)
	}
	if len(leaves) != 1 || leaves[0].ID != lv.ID {
		t.Errorf("ForTeacher() = %+v; want just %q", leaves, lv.ID)
	}
}

func Test_service_Decide(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	start := time.Date(2021, 4, 1, 0, 0, 0, 0, time.UTC)
	lv, err := f.svc.Request(ctx, f.bart.ID, leave.NewLeave{StartDate: start, EndDate: start, Reason: "sick"})
	if err != nil {
		t.Fatalf("Request(): %v", err)
	}

	decided, err := f.svc.Decide(ctx, f.tch.ID, lv.ID, leave.Decision{Status: leave.StatusApproved, Comments: "get well"})
	if err != nil {
		t.Fatalf("Decide(): %v", err)
	}
	if decided.Status != leave.StatusApproved {
		t.Errorf("Decide() status = %v; want %v", decided.Status, leave.StatusApproved)
	}
	if decided.ApprovedBy != f.tch.ID {
		t.Errorf("Decide() approvedBy = %q; want %q", decided.ApprovedBy, f.tch.ID)
	}
	if decided.Comments != "get well" {
		t.Errorf("Decide() comments = %q", decided.Comments)
	}

	// re-deciding overwrites
	decided, err = f.svc.Decide(ctx, f.tch.ID, lv.ID, leave.Decision{Status: leave.StatusRejected})
	if err != nil {
		t.Fatalf("Decide() again: %v", err)
	}
	if decided.Status != leave.StatusRejected {
		t.Errorf("Decide() again status = %v; want %v", decided.Status, leave.StatusRejected)
	}
	if decided.Comments != "get well" { // comments untouched when omitted
		t.Errorf("Decide() again comments = %q", decided.Comments)
	}

	// another teacher's student
	if _, err = f.svc.Decide(ctx, f.other.ID, lv.ID, leave.Decision{Status: leave.StatusApproved}); err != leave.ErrNotOwnStudent {
		t.Errorf("Decide() other err = %v; want %v", err, leave.ErrNotOwnStudent)
	}

	// unknown request
	if _, err = f.svc.Decide(ctx, f.tch.ID, "unknown", leave.Decision{Status: leave.StatusApproved}); err != leave.ErrNotFound {
		t.Errorf("Decide() unknown err = %v; want %v", err, leave.ErrNotFound)
	}
}
