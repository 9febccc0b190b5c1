package attendance

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/mahudhurio/core"
)

// Status of a student on a given day.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusExcused Status = "excused"
)

// Method by which an attendance record was marked.
type Method string

const (
	MethodManual Method = "manual"
	MethodFacial Method = "facial"
)

// Attendance is a single student's record for a single calendar day.
// At most one record exists per (StudentID, Date); re-marking overwrites.
type Attendance struct {
	ID        string         `json:"id"`
	StudentID string         `json:"student_id"`
	Date      time.Time      `json:"date"` // UTC midnight
	Status    Status         `json:"status"`
	Method    Method         `json:"method"`
	Location  *core.Location `json:"location,omitempty"` // facial marks only
	MarkedAt  time.Time      `json:"marked_at"`          // time of (last) marking
	CreatedAt time.Time      `json:"created_at"`         // UTC
	UpdatedAt time.Time      `json:"updated_at"`         // UTC
}

// FaceData is a student's gallery of facial descriptors. Re-uploading
// replaces the whole descriptor set.
type FaceData struct {
	ID          string      `json:"id"`
	StudentID   string      `json:"student_id"`
	Descriptors [][]float64 `json:"descriptors"`
	PhotoURL    string      `json:"photo_url,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"` // UTC
}

// Day truncates t to the start of its calendar day in UTC; the uniqueness key.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MarkAttendance contains information needed to mark one student's attendance.
type MarkAttendance struct {
	StudentID string    `json:"student_id" validate:"required"`
	Date      time.Time `json:"date" validate:"required"`
	Status    Status    `json:"status" validate:"required,oneof=present absent late excused"`
}

func (ma *MarkAttendance) Validate(validate *validator.Validate) error {
	ma.StudentID = core.CleanString(ma.StudentID)
	return validate.Struct(ma)
}

type BulkEntry struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    Status `json:"status" validate:"required,oneof=present absent late excused"`
}

// MarkBulkAttendance marks several students on the same day in one request.
type MarkBulkAttendance struct {
	Date    time.Time   `json:"date" validate:"required"`
	Entries []BulkEntry `json:"attendance" validate:"required,min=1,dive"`
}

func (mb *MarkBulkAttendance) Validate(validate *validator.Validate) error {
	for i := range mb.Entries {
		mb.Entries[i].StudentID = core.CleanString(mb.Entries[i].StudentID)
	}
	return validate.Struct(mb)
}

// BulkResult is the per-entry outcome of a bulk mark; entries fail
// independently, the batch is not atomic.
type BulkResult struct {
	StudentID string `json:"student_id"`
	Status    string `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
}

// FacialMark contains a probe descriptor and the marking coordinates.
// Only the first presented descriptor is compared against the gallery.
type FacialMark struct {
	Descriptors [][]float64 `json:"descriptors" validate:"required,min=1"`
	Latitude    float64     `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64     `json:"longitude" validate:"min=-180,max=180"`
}

func (fm *FacialMark) Validate(validate *validator.Validate) error {
	return validate.Struct(fm)
}

// UploadFaceData replaces a student's descriptor gallery wholesale.
type UploadFaceData struct {
	StudentID   string      `json:"student_id" validate:"required"`
	Descriptors [][]float64 `json:"descriptors" validate:"required,min=1"`
	PhotoURL    string      `json:"photo_url" validate:"omitempty,url"`
}

func (up *UploadFaceData) Validate(validate *validator.Validate) error {
	up.StudentID = core.CleanString(up.StudentID)
	return validate.Struct(up)
}

// QueryFilter narrows report results; zero values are ignored.
type QueryFilter struct {
	StudentID string    `json:"student_id"`
	From      time.Time `json:"from_date"`
	To        time.Time `json:"to_date"`
}

// Filter is the repository-level filter. A non-nil empty StudentIDs slice
// matches nothing (a teacher with no students sees no records).
type Filter struct {
	StudentIDs []string
	From       time.Time
	To         time.Time
}
