package teacher_test

import (
	"context"
	"testing"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/teacher"
	emailsvc "github.com/trezcool/mahudhurio/services/email"
	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
	testutil "github.com/trezcool/mahudhurio/tests"
)

type mailRecorder interface {
	core.EmailService
	SentMessages() []core.EmailMessage
}

func setup(t *testing.T) (teacher.Service, *dummydb.DB, mailRecorder) {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	mailSvc := emailsvc.NewDummyService()
	svc := teacher.NewService(dummydb.NewTeacherRepository(db), dummydb.NewSchoolRepository(db), mailSvc)
	return svc, db, mailSvc
}

func Test_service_Register(t *testing.T) {
	svc, db, mailSvc := setup(t)
	ctx := context.Background()

	sch := testutil.CreateSchool(t, dummydb.NewSchoolRepository(db), "Springfield High", "742 Evergreen Terrace", -4.325, 15.3222)

	tch, err := svc.Register(ctx, teacher.NewTeacher{
		Name:       "Edna Krabappel",
		Email:      "edna@springfield.cd",
		Password:   "s3cret!",
		SchoolCode: sch.Code,
	})
	if err != nil {
		t.Fatalf("Register(): %v", err)
	}
	if tch.Code != "SPR-001" {
		t.Errorf("Register() code = %q; want %q", tch.Code, "SPR-001")
	}
	if tch.SchoolID != sch.ID {
		t.Errorf("Register() schoolID = %q; want %q", tch.SchoolID, sch.ID)
	}
	if err = tch.CheckPassword("s3cret!"); err != nil {
		t.Errorf("CheckPassword(): %v", err)
	}

	// the teacher code is mailed out
	sent := mailSvc.SentMessages()
	if len(sent) != 1 {
		t.Fatalf("sent mails = %d; want 1", len(sent))
	}
	if sent[0].Subject != "Your Teacher ID" {
		t.Errorf("mail subject = %q; want %q", sent[0].Subject, "Your Teacher ID")
	}

	// codes are sequential per school
	tch2, err := svc.Register(ctx, teacher.NewTeacher{
		Name:       "Elizabeth Hoover",
		Email:      "hoover@springfield.cd",
		Password:   "s3cret!",
		SchoolCode: sch.Code,
	})
	if err != nil {
		t.Fatalf("Register() second: %v", err)
	}
	if tch2.Code != "SPR-002" {
		t.Errorf("Register() second code = %q; want %q", tch2.Code, "SPR-002")
	}
}

func Test_service_Register_invalid(t *testing.T) {
	svc, db, _ := setup(t)
	ctx := context.Background()

	sch := testutil.CreateSchool(t, dummydb.NewSchoolRepository(db), "Springfield High", "a", 0, 0)

	// unknown school code
	_, err := svc.Register(ctx, teacher.NewTeacher{Name: "X", Email: "x@test.cd", Password: "s3cret!", SchoolCode: "XYZ"})
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Register() err = %v; want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "school_id" {
		t.Errorf("Register() fields = %+v; want school_id", vErr.Fields)
	}

	// duplicate email
	if _, err = svc.Register(ctx, teacher.NewTeacher{Name: "A", Email: "a@test.cd", Password: "s3cret!", SchoolCode: sch.Code}); err != nil {
		t.Fatalf("Register(): %v", err)
	}
	_, err = svc.Register(ctx, teacher.NewTeacher{Name: "B", Email: "a@test.cd", Password: "s3cret!", SchoolCode: sch.Code})
	vErr, ok = err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Register() dup err = %v; want *core.ValidationError", err)
	}
	if len(vErr.Fields) != 1 || vErr.Fields[0].Field != "email" {
		t.Errorf("Register() dup fields = %+v; want email", vErr.Fields)
	}
}

func Test_service_Authenticate(t *testing.T) {
	svc, db, _ := setup(t)
	ctx := context.Background()

	sch := testutil.CreateSchool(t, dummydb.NewSchoolRepository(db), "Springfield High", "a", 0, 0)
	tch := testutil.CreateTeacher(t, dummydb.NewTeacherRepository(db), "Edna", "edna@springfield.cd", "s3cret!", sch)

	got, err := svc.Authenticate(ctx, "edna@springfield.cd", "s3cret!")
	if err != nil {
		t.Fatalf("Authenticate(): %v", err)
	}
	if got.ID != tch.ID {
		t.Errorf("Authenticate() ID = %q; want %q", got.ID, tch.ID)
	}

	if _, err = svc.Authenticate(ctx, "edna@springfield.cd", "nope"); err != teacher.ErrInvalidCredentials {
		t.Errorf("Authenticate() bad pwd err = %v; want %v", err, teacher.ErrInvalidCredentials)
	}
	if _, err = svc.Authenticate(ctx, "nobody@springfield.cd", "s3cret!"); err != teacher.ErrInvalidCredentials {
		t.Errorf("Authenticate() unknown err = %v; want %v", err, teacher.ErrInvalidCredentials)
	}
}
