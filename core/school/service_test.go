package school_test

import (
	"context"
	"testing"

	"github.com/trezcool/mahudhurio/core/school"
	dummydb "github.com/trezcool/mahudhurio/storage/database/dummy"
)

func setup(t *testing.T) school.Service {
	t.Helper()
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	return school.NewService(dummydb.NewSchoolRepository(db))
}

func Test_service_Register(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	sch, existing, err := svc.Register(ctx, school.NewSchool{
		Name:      "Springfield High",
		Address:   "742 Evergreen Terrace",
		Latitude:  -4.325,
		Longitude: 15.3222,
	})
	if err != nil {
		t.Fatalf("Register(): %v", err)
	}
	if existing {
		t.Error("Register() existing = true; want false")
	}
	if sch.ID == "" {
		t.Error("Register() did not set an ID")
	}
	if sch.Code != "SPR" {
		t.Errorf("Register() code = %q; want %q", sch.Code, "SPR")
	}

	// same name is idempotent
	again, existing, err := svc.Register(ctx, school.NewSchool{Name: "Springfield High", Address: "elsewhere"})
	if err != nil {
		t.Fatalf("Register() again: %v", err)
	}
	if !existing {
		t.Error("Register() again existing = false; want true")
	}
	if again.ID != sch.ID {
		t.Errorf("Register() again ID = %q; want %q", again.ID, sch.ID)
	}

	// a different school whose derived code collides resolves to the first one
	collide, existing, err := svc.Register(ctx, school.NewSchool{Name: "Spring Valley Academy", Address: "elsewhere"})
	if err != nil {
		t.Fatalf("Register() collide: %v", err)
	}
	if !existing {
		t.Error("Register() collide existing = false; want true")
	}
	if collide.ID != sch.ID {
		t.Errorf("Register() collide ID = %q; want %q", collide.ID, sch.ID)
	}

	// a distinct school registers fine
	other, existing, err := svc.Register(ctx, school.NewSchool{Name: "Mbandaka Institute", Address: "Av. Bolenge 12"})
	if err != nil {
		t.Fatalf("Register() other: %v", err)
	}
	if existing {
		t.Error("Register() other existing = true; want false")
	}
	if other.Code != "MBA" {
		t.Errorf("Register() other code = %q; want %q", other.Code, "MBA")
	}
}

func Test_service_QueryAll(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	schools, err := svc.QueryAll(ctx)
	if err != nil {
		t.Fatalf("QueryAll(): %v", err)
	}
	if len(schools) != 0 {
		t.Errorf("QueryAll() len = %d; want 0", len(schools))
	}

	if _, _, err = svc.Register(ctx, school.NewSchool{Name: "Springfield High", Address: "a"}); err != nil {
		t.Fatalf("Register(): %v", err)
	}
	if _, _, err = svc.Register(ctx, school.NewSchool{Name: "Mbandaka Institute", Address: "b"}); err != nil {
		t.Fatalf("Register(): %v", err)
	}

	schools, err = svc.QueryAll(ctx)
	if err != nil {
		t.Fatalf("QueryAll(): %v", err)
	}
	if len(schools) != 2 {
		t.Errorf("QueryAll() len = %d; want 2", len(schools))
	}
}

func Test_service_GetByCode(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	sch, _, err := svc.Register(ctx, school.NewSchool{Name: "Springfield High", Address: "a"})
	if err != nil {
		t.Fatalf("Register(): %v", err)
	}

	got, err := svc.GetByCode(ctx, "SPR")
	if err != nil {
		t.Fatalf("GetByCode(): %v", err)
	}
	if got.ID != sch.ID {
		t.Errorf("GetByCode() ID = %q; want %q", got.ID, sch.ID)
	}

	if _, err = svc.GetByCode(ctx, "XYZ"); err != school.ErrNotFound {
		t.Errorf("GetByCode() err = %v; want %v", err, school.ErrNotFound)
	}
}
