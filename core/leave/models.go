package leave

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mahudhurio/core"
)

// Status of a leave request. pending is initial; approved/rejected terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type Leave struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Reason     string    `json:"reason"`
	Status     Status    `json:"status"`
	ApprovedBy string    `json:"approved_by,omitempty"` // deciding teacher's ID
	Comments   string    `json:"comments,omitempty"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// NewLeave contains information needed to submit a leave request.
type NewLeave struct {
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required,gtefield=StartDate"`
	Reason    string    `json:"reason" validate:"required"`
}

func (nl *NewLeave) Validate(validate *validator.Validate) error {
	nl.Reason = core.CleanString(nl.Reason)
	return validate.Struct(nl)
}

// Decision approves or rejects a pending request.
type Decision struct {
	Status   Status `json:"status" validate:"required,oneof=approved rejected"`
	Comments string `json:"comments"`
}

func (d *Decision) Validate(validate *validator.Validate) error {
	d.Comments = core.CleanString(d.Comments)
	return validate.Struct(d)
}
