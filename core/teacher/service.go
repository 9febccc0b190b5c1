package teacher

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/school"
)

var (
	// errors
	ErrNotFound           = errors.New("teacher not found")
	ErrEmailExists        = errors.New("a teacher with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	errInvalidSchool = errors.New("invalid school ID")
)

type (
	Repository interface {
		CreateTeacher(ctx context.Context, tch Teacher) (Teacher, error)
		GetTeacherByID(ctx context.Context, id string) (Teacher, error)
		GetTeacherByEmail(ctx context.Context, email string) (Teacher, error)
		GetTeacherByCode(ctx context.Context, code string) (Teacher, error)
		// NextTeacherSeq atomically increments and returns the per-school
		// teacher sequence counter, starting at 1.
		NextTeacherSeq(ctx context.Context, schoolID string) (int, error)
	}

	Service interface {
		Register(ctx context.Context, nt NewTeacher) (Teacher, error)
		// Authenticate returns ErrInvalidCredentials for both an unknown email
		// and a password mismatch.
		Authenticate(ctx context.Context, email, pwd string) (Teacher, error)
		GetByID(ctx context.Context, id string) (Teacher, error)
	}

	service struct {
		repo       Repository
		schoolRepo school.Repository
		mailSvc    core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, schoolRepo school.Repository, mailSvc core.EmailService) Service {
	return &service{
		repo:       repo,
		schoolRepo: schoolRepo,
		mailSvc:    mailSvc,
	}
}

func (svc *service) Register(ctx context.Context, nt NewTeacher) (Teacher, error) {
	sch, err := svc.schoolRepo.GetSchoolByCode(ctx, nt.SchoolCode)
	if err != nil {
		if err == school.ErrNotFound {
			return Teacher{}, core.NewValidationError(errInvalidSchool, core.FieldError{Field: "school_id", Error: errInvalidSchool.Error()})
		}
		return Teacher{}, err
	}

	if _, err = svc.repo.GetTeacherByEmail(ctx, nt.Email); err == nil {
		return Teacher{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if err != ErrNotFound {
		return Teacher{}, err
	}

	seq, err := svc.repo.NextTeacherSeq(ctx, sch.ID)
	if err != nil {
		return Teacher{}, err
	}

	now := time.Now().UTC()
	tch := Teacher{
		Name:      nt.Name,
		Email:     nt.Email,
		Code:      MakeCode(sch.Code, seq),
		SchoolID:  sch.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = tch.SetPassword(nt.Password); err != nil {
		return Teacher{}, err
	}
	tch, err = svc.repo.CreateTeacher(ctx, tch)
	if err != nil {
		return Teacher{}, err
	}

	svc.sendTeacherCodeMail(tch) // best-effort; registration already succeeded
	return tch, nil
}

func (svc *service) Authenticate(ctx context.Context, email, pwd string) (Teacher, error) {
	tch, err := svc.repo.GetTeacherByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		if err == ErrNotFound {
			return Teacher{}, ErrInvalidCredentials
		}
		return Teacher{}, err
	}
	if err = tch.CheckPassword(pwd); err != nil {
		return Teacher{}, ErrInvalidCredentials
	}
	return tch, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Teacher, error) {
	return svc.repo.GetTeacherByID(ctx, id)
}

func (svc *service) sendTeacherCodeMail(tch Teacher) {
	body := fmt.Sprintf(
		"Dear Teacher,\n\nYour account has been created successfully. Your Teacher ID is: %s\n\n"+
			"Please keep this ID safe as it will be used to create student accounts under your supervision.\n\n"+
			"Regards,\nSchool Attendance System",
		tch.Code,
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: tch.Name, Address: tch.Email}},
		Subject: "Your Teacher ID",
		Body:    body,
	})
}
