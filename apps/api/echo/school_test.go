package echoapi_test

import (
	"net/http"
	"testing"

	"github.com/trezcool/mahudhurio/core/school"
	testutil "github.com/trezcool/mahudhurio/tests"
)

func Test_schoolApi_schoolRegister(t *testing.T) {
	e := setup(t)

	body := marshallObj(t, school.NewSchool{
		Name:      "Springfield High",
		Address:   "742 Evergreen Terrace",
		Latitude:  -4.325,
		Longitude: 15.3222,
	})

	req, rec := newRequest(http.MethodPost, "/api/school/register", body)
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusCreated)

	data := decodeMap(t, rec)
	if data["is_existing"] != false {
		t.Errorf("is_existing = %v; want false", data["is_existing"])
	}
	sch, ok := data["school"].(map[string]interface{})
	if !ok {
		t.Fatalf("school missing in %v", data)
	}
	if sch["code"] != "SPR" {
		t.Errorf("code = %v; want SPR", sch["code"])
	}

	// idempotent re-registration
	req, rec = newRequest(http.MethodPost, "/api/school/register", body)
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusOK)
	if data = decodeMap(t, rec); data["is_existing"] != true {
		t.Errorf("is_existing = %v; want true", data["is_existing"])
	}

	// validation
	req, rec = newRequest(http.MethodPost, "/api/school/register", marshallObj(t, school.NewSchool{Name: "No Address"}))
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusBadRequest)
	if data = decodeMap(t, rec); data["address"] == nil {
		t.Errorf("want an address field error; got %v", data)
	}
}

func Test_schoolApi_schoolQuery(t *testing.T) {
	e := setup(t)

	testutil.CreateSchool(t, e.schoolRepo, "Springfield High", "a", 0, 0)
	testutil.CreateSchool(t, e.schoolRepo, "Mbandaka Institute", "b", 0, 0)

	req, rec := newRequest(http.MethodGet, "/api/school")
	e.app.ServeHTTP(rec, req)
	checkCode(t, rec, http.StatusOK)
	if schools := decodeList(t, rec); len(schools) != 2 {
		t.Errorf("len = %d; want 2", len(schools))
	}
}
