package leave

import (
	"context"
	"errors"
	"time"

	"github.com/trezcool/mahudhurio/core/student"
)

var (
	// errors
	ErrNotFound      = errors.New("leave request not found")
	ErrNotOwnStudent = errors.New("not authorized to decide this leave request")
)

type (
	Repository interface {
		CreateLeave(ctx context.Context, lv Leave) (Leave, error)
		GetLeaveByID(ctx context.Context, id string) (Leave, error)
		UpdateLeave(ctx context.Context, lv Leave) (Leave, error)
		// FilterLeavesByStudents returns requests for the given students,
		// newest first (by creation time).
		FilterLeavesByStudents(ctx context.Context, studentIDs []string) ([]Leave, error)
	}

	Service interface {
		Request(ctx context.Context, studentID string, nl NewLeave) (Leave, error)
		ForTeacher(ctx context.Context, teacherID string) ([]Leave, error)
		// Decide sets the decision on a request owned by one of the teacher's
		// students. Re-deciding an already-decided request overwrites it.
		Decide(ctx context.Context, teacherID, leaveID string, d Decision) (Leave, error)
		ForStudent(ctx context.Context, studentID string) ([]Leave, error)
	}

	service struct {
		repo        Repository
		studentRepo student.Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, studentRepo student.Repository) Service {
	return &service{
		repo:        repo,
		studentRepo: studentRepo,
	}
}

func (svc *service) Request(ctx context.Context, studentID string, nl NewLeave) (Leave, error) {
	now := time.Now().UTC()
	return svc.repo.CreateLeave(ctx, Leave{
		StudentID: studentID,
		StartDate: nl.StartDate.UTC(),
		EndDate:   nl.EndDate.UTC(),
		Reason:    nl.Reason,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *service) ForTeacher(ctx context.Context, teacherID string) ([]Leave, error) {
	roster, err := svc.studentRepo.FilterStudentsByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(roster))
	for _, stu := range roster {
		ids = append(ids, stu.ID)
	}
	return svc.repo.FilterLeavesByStudents(ctx, ids)
}

func (svc *service) Decide(ctx context.Context, teacherID, leaveID string, d Decision) (Leave, error) {
	lv, err := svc.repo.GetLeaveByID(ctx, leaveID)
	if err != nil {
		return Leave{}, err
	}
	stu, err := svc.studentRepo.GetStudentByID(ctx, lv.StudentID)
	if err != nil {
		return Leave{}, err
	}
	if stu.TeacherID != teacherID {
		return Leave{}, ErrNotOwnStudent
	}

	lv.Status = d.Status
	lv.ApprovedBy = teacherID
	if d.Comments != "" {
		lv.Comments = d.Comments
	}
	lv.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateLeave(ctx, lv)
}

func (svc *service) ForStudent(ctx context.Context, studentID string) ([]Leave, error) {
	return svc.repo.FilterLeavesByStudents(ctx, []string{studentID})
}
