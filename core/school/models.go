package school

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mahudhurio/core"
)

type School struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Code      string        `json:"code"` // e.g. "SPR"; unique, derived from Name
	Address   string        `json:"address"`
	Location  core.Location `json:"location"`
	CreatedAt time.Time     `json:"created_at"` // UTC
	UpdatedAt time.Time     `json:"updated_at"` // UTC
}

// MakeCode derives a school code from its name: the upper-cased first three
// characters of the trimmed name. Two distinct names sharing a prefix collide
// on purpose; registration treats the second one as "already exists".
func MakeCode(name string) string {
	rs := []rune(core.CleanString(name))
	if len(rs) > 3 {
		rs = rs[:3]
	}
	return strings.ToUpper(string(rs))
}

// NewSchool contains information needed to register a new School.
type NewSchool struct {
	Name      string  `json:"name" validate:"required"`
	Address   string  `json:"address" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
}

func (ns *NewSchool) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Address = core.CleanString(ns.Address)
	return validate.Struct(ns)
}
