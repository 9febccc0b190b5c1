package teacher

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/mahudhurio/core"
)

type Teacher struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Code         string    `json:"teacher_id"` // e.g. "SPR-001"; unique, sequential per school
	SchoolID     string    `json:"school_id"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at"` // UTC
}

func (t *Teacher) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.PasswordHash = hash
	return nil
}

func (t *Teacher) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(t.PasswordHash, []byte(pwd))
}

// MakeCode formats a teacher code from the school code and a sequence number,
// e.g. ("SPR", 7) -> "SPR-007".
func MakeCode(schoolCode string, seq int) string {
	return fmt.Sprintf("%s-%03d", schoolCode, seq)
}

// NewTeacher contains information needed to register a new Teacher.
type NewTeacher struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	SchoolCode string `json:"school_id" validate:"required"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.SchoolCode = strings.ToUpper(core.CleanString(nt.SchoolCode))
	return validate.Struct(nt)
}
