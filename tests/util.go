package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/student"
	"github.com/trezcool/mahudhurio/core/teacher"
)

func CreateSchool(t *testing.T, repo school.Repository, name, address string, lat, lng float64) school.School {
	t.Helper()

	now := time.Now().UTC()
	sch := school.School{
		Name:      name,
		Code:      school.MakeCode(name),
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	sch.Location.Latitude = lat
	sch.Location.Longitude = lng

	sch, err := repo.CreateSchool(context.Background(), sch)
	if err != nil {
		t.Fatalf("CreateSchool(): %v", err)
	}
	return sch
}

func CreateTeacher(t *testing.T, repo teacher.Repository, name, email, pwd string, sch school.School) teacher.Teacher {
	t.Helper()
	ctx := context.Background()

	seq, err := repo.NextTeacherSeq(ctx, sch.ID)
	if err != nil {
		t.Fatalf("NextTeacherSeq(): %v", err)
	}

	now := time.Now().UTC()
	tch := teacher.Teacher{
		Name:      name,
		Email:     email,
		Code:      teacher.MakeCode(sch.Code, seq),
		SchoolID:  sch.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = tch.SetPassword(pwd); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}

	tch, err = repo.CreateTeacher(ctx, tch)
	if err != nil {
		t.Fatalf("CreateTeacher(): %v", err)
	}
	return tch
}

func CreateStudent(t *testing.T, repo student.Repository, name, email, parentEmail, parentPhone, pwd string, tch teacher.Teacher) student.Student {
	t.Helper()

	now := time.Now().UTC()
	stu := student.Student{
		Name:        name,
		Email:       email,
		ParentEmail: parentEmail,
		ParentPhone: parentPhone,
		SchoolID:    tch.SchoolID,
		TeacherID:   tch.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := stu.SetPassword(pwd); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}

	stu, err := repo.CreateStudent(context.Background(), stu)
	if err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}
	return stu
}
