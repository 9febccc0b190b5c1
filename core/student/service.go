package student

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/teacher"
)

var (
	// errors
	ErrNotFound           = errors.New("student not found")
	ErrEmailExists        = errors.New("a student with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	errInvalidTeacher = errors.New("invalid teacher ID")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, stu Student) (Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		GetStudentByEmail(ctx context.Context, email string) (Student, error)
		// FilterStudentsByTeacher returns a teacher's roster, oldest first.
		FilterStudentsByTeacher(ctx context.Context, teacherID string) ([]Student, error)
	}

	Service interface {
		Register(ctx context.Context, ns NewStudent) (Student, error)
		// Authenticate returns ErrInvalidCredentials for both an unknown email
		// and a password mismatch.
		Authenticate(ctx context.Context, email, pwd string) (Student, error)
		GetByID(ctx context.Context, id string) (Student, error)
		ForTeacher(ctx context.Context, teacherID string) ([]Student, error)
	}

	service struct {
		repo        Repository
		teacherRepo teacher.Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, teacherRepo teacher.Repository) Service {
	return &service{
		repo:        repo,
		teacherRepo: teacherRepo,
	}
}

func (svc *service) Register(ctx context.Context, ns NewStudent) (Student, error) {
	tch, err := svc.teacherRepo.GetTeacherByCode(ctx, ns.TeacherCode)
	if err != nil {
		if err == teacher.ErrNotFound {
			return Student{}, core.NewValidationError(errInvalidTeacher, core.FieldError{Field: "teacher_id", Error: errInvalidTeacher.Error()})
		}
		return Student{}, err
	}

	if _, err = svc.repo.GetStudentByEmail(ctx, ns.Email); err == nil {
		return Student{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	} else if err != ErrNotFound {
		return Student{}, err
	}

	now := time.Now().UTC()
	stu := Student{
		Name:        ns.Name,
		Email:       ns.Email,
		ParentEmail: ns.ParentEmail,
		ParentPhone: ns.ParentPhone,
		SchoolID:    tch.SchoolID, // school is inherited from the teacher
		TeacherID:   tch.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = stu.SetPassword(ns.Password); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(ctx, stu)
}

func (svc *service) Authenticate(ctx context.Context, email, pwd string) (Student, error) {
	stu, err := svc.repo.GetStudentByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		if err == ErrNotFound {
			return Student{}, ErrInvalidCredentials
		}
		return Student{}, err
	}
	if err = stu.CheckPassword(pwd); err != nil {
		return Student{}, ErrInvalidCredentials
	}
	return stu, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *service) ForTeacher(ctx context.Context, teacherID string) ([]Student, error) {
	return svc.repo.FilterStudentsByTeacher(ctx, teacherID)
}
