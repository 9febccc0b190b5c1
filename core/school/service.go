package school

import (
	"context"
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("school not found")
	ErrExists   = errors.New("a school with this name or code already exists")
)

type (
	Repository interface {
		CreateSchool(ctx context.Context, sch School) (School, error)
		GetSchoolByID(ctx context.Context, id string) (School, error)
		GetSchoolByCode(ctx context.Context, code string) (School, error)
		// GetSchoolByNameOrCode matches on either field; used for idempotent registration.
		GetSchoolByNameOrCode(ctx context.Context, name, code string) (School, error)
		QueryAllSchools(ctx context.Context) ([]School, error)
	}

	Service interface {
		// Register creates a new School or, when one already exists with the
		// same name or derived code, returns it with existing=true.
		Register(ctx context.Context, ns NewSchool) (sch School, existing bool, err error)
		QueryAll(ctx context.Context) ([]School, error)
		GetByCode(ctx context.Context, code string) (School, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Register(ctx context.Context, ns NewSchool) (School, bool, error) {
	code := MakeCode(ns.Name)
	sch, err := svc.repo.GetSchoolByNameOrCode(ctx, ns.Name, code)
	if err == nil {
		return sch, true, nil
	}
	if err != ErrNotFound {
		return School{}, false, err
	}

	now := time.Now().UTC()
	sch = School{
		Name:      ns.Name,
		Code:      code,
		Address:   ns.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	sch.Location.Latitude = ns.Latitude
	sch.Location.Longitude = ns.Longitude
	sch, err = svc.repo.CreateSchool(ctx, sch)
	return sch, false, err
}

func (svc *service) QueryAll(ctx context.Context) ([]School, error) {
	return svc.repo.QueryAllSchools(ctx)
}

func (svc *service) GetByCode(ctx context.Context, code string) (School, error) {
	return svc.repo.GetSchoolByCode(ctx, code)
}
