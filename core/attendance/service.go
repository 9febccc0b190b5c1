package attendance

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/trezcool/mahudhurio/core"
	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/student"
	"github.com/trezcool/mahudhurio/core/teacher"
)

// geofenceRadiusMeters bounds how far from the school facial marking works.
const geofenceRadiusMeters = 500

var (
	// errors
	ErrNotFound         = errors.New("attendance record not found")
	ErrFaceDataNotFound = errors.New("face data not found")
	ErrNotOwnStudent    = errors.New("not authorized to mark attendance for this student")
	ErrOutOfRange       = errors.New("attendance can only be marked within school premises")
	ErrNoMatch          = errors.New("no matching student found")
)

type (
	Repository interface {
		// GetAttendance looks up the unique record for (studentID, date);
		// date must already be truncated with Day.
		GetAttendance(ctx context.Context, studentID string, date time.Time) (Attendance, error)
		CreateAttendance(ctx context.Context, att Attendance) (Attendance, error)
		UpdateAttendance(ctx context.Context, att Attendance) (Attendance, error)
		// FilterAttendance returns matching records, newest date first.
		FilterAttendance(ctx context.Context, filter Filter) ([]Attendance, error)
		// SaveFaceData creates or wholesale-replaces a student's gallery.
		SaveFaceData(ctx context.Context, fd FaceData) (FaceData, error)
		GetFaceDataByStudent(ctx context.Context, studentID string) (FaceData, error)
	}

	// RosterAttendance is a teacher's roster together with all its records.
	RosterAttendance struct {
		Students []student.Student `json:"students"`
		Records  []Attendance      `json:"records"`
	}

	// Actor identifies the caller for scope-restricted queries.
	Actor struct {
		Role core.Role
		ID   string
	}

	Service interface {
		// Mark upserts a student's record for the day; marking absent fires a
		// best-effort parent notification.
		Mark(ctx context.Context, teacherID string, ma MarkAttendance) (Attendance, error)
		// MarkBulk applies Mark per entry; failed entries are reported in the
		// results, they do not abort the batch.
		MarkBulk(ctx context.Context, teacherID string, mb MarkBulkAttendance) ([]BulkResult, error)
		// FacialMark matches the probe descriptor against the teacher's roster
		// gallery and marks the matched student present for today.
		FacialMark(ctx context.Context, teacherID string, fm FacialMark) (student.Student, Attendance, error)
		UploadFaceData(ctx context.Context, teacherID string, up UploadFaceData) (FaceData, error)
		ForStudent(ctx context.Context, studentID string) ([]Attendance, error)
		ForTeacher(ctx context.Context, teacherID string) (RosterAttendance, error)
		// Report filters records; teacher callers are always restricted to
		// their own roster, whatever the requested filter.
		Report(ctx context.Context, actor Actor, qf QueryFilter) ([]Attendance, error)
	}

	service struct {
		repo        Repository
		studentRepo student.Repository
		teacherRepo teacher.Repository
		schoolRepo  school.Repository
		mailSvc     core.EmailService
		smsSvc      core.SMSService
		log         core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(
	repo Repository,
	studentRepo student.Repository,
	teacherRepo teacher.Repository,
	schoolRepo school.Repository,
	mailSvc core.EmailService,
	smsSvc core.SMSService,
	log core.Logger,
) Service {
	return &service{
		repo:        repo,
		studentRepo: studentRepo,
		teacherRepo: teacherRepo,
		schoolRepo:  schoolRepo,
		mailSvc:     mailSvc,
		smsSvc:      smsSvc,
		log:         log,
	}
}

func (svc *service) Mark(ctx context.Context, teacherID string, ma MarkAttendance) (Attendance, error) {
	stu, err := svc.studentRepo.GetStudentByID(ctx, ma.StudentID)
	if err != nil {
		return Attendance{}, err
	}
	if stu.TeacherID != teacherID {
		return Attendance{}, ErrNotOwnStudent
	}
	return svc.mark(ctx, stu, Day(ma.Date), ma.Status, MethodManual, nil)
}

func (svc *service) MarkBulk(ctx context.Context, teacherID string, mb MarkBulkAttendance) ([]BulkResult, error) {
	day := Day(mb.Date)
	results := make([]BulkResult, 0, len(mb.Entries))
	for _, entry := range mb.Entries {
		stu, err := svc.studentRepo.GetStudentByID(ctx, entry.StudentID)
		if err != nil {
			if err == student.ErrNotFound {
				results = append(results, BulkResult{StudentID: entry.StudentID, Error: student.ErrNotFound.Error()})
				continue
			}
			return results, err
		}
		if stu.TeacherID != teacherID {
			results = append(results, BulkResult{StudentID: entry.StudentID, Error: ErrNotOwnStudent.Error()})
			continue
		}
		if _, err = svc.mark(ctx, stu, day, entry.Status, MethodManual, nil); err != nil {
			return results, err
		}
		results = append(results, BulkResult{StudentID: entry.StudentID, Status: "success"})
	}
	return results, nil
}

func (svc *service) FacialMark(ctx context.Context, teacherID string, fm FacialMark) (student.Student, Attendance, error) {
	tch, err := svc.teacherRepo.GetTeacherByID(ctx, teacherID)
	if err != nil {
		return student.Student{}, Attendance{}, err
	}
	sch, err := svc.schoolRepo.GetSchoolByID(ctx, tch.SchoolID)
	if err != nil {
		return student.Student{}, Attendance{}, err
	}

	loc := core.Location{Latitude: fm.Latitude, Longitude: fm.Longitude}
	if loc.DistanceTo(sch.Location) > geofenceRadiusMeters {
		return student.Student{}, Attendance{}, ErrOutOfRange
	}

	roster, err := svc.studentRepo.FilterStudentsByTeacher(ctx, teacherID)
	if err != nil {
		return student.Student{}, Attendance{}, err
	}
	galleries := make([]FaceData, 0, len(roster))
	for _, stu := range roster {
		fd, err := svc.repo.GetFaceDataByStudent(ctx, stu.ID)
		if err != nil {
			if err == ErrFaceDataNotFound {
				continue
			}
			return student.Student{}, Attendance{}, err
		}
		galleries = append(galleries, fd)
	}

	studentID, dist, ok := bestMatch(fm.Descriptors[0], galleries)
	if !ok || dist >= matchThreshold {
		return student.Student{}, Attendance{}, ErrNoMatch
	}
	matched, err := svc.studentRepo.GetStudentByID(ctx, studentID)
	if err != nil {
		return student.Student{}, Attendance{}, err
	}

	att, err := svc.mark(ctx, matched, Day(time.Now()), StatusPresent, MethodFacial, &loc)
	return matched, att, err
}

func (svc *service) UploadFaceData(ctx context.Context, teacherID string, up UploadFaceData) (FaceData, error) {
	stu, err := svc.studentRepo.GetStudentByID(ctx, up.StudentID)
	if err != nil {
		return FaceData{}, err
	}
	if stu.TeacherID != teacherID {
		return FaceData{}, ErrNotOwnStudent
	}
	return svc.repo.SaveFaceData(ctx, FaceData{
		StudentID:   stu.ID,
		Descriptors: up.Descriptors,
		PhotoURL:    up.PhotoURL,
		UpdatedAt:   time.Now().UTC(),
	})
}

func (svc *service) ForStudent(ctx context.Context, studentID string) ([]Attendance, error) {
	return svc.repo.FilterAttendance(ctx, Filter{StudentIDs: []string{studentID}})
}

func (svc *service) ForTeacher(ctx context.Context, teacherID string) (RosterAttendance, error) {
	roster, err := svc.studentRepo.FilterStudentsByTeacher(ctx, teacherID)
	if err != nil {
		return RosterAttendance{}, err
	}
	ids := make([]string, 0, len(roster))
	for _, stu := range roster {
		ids = append(ids, stu.ID)
	}
	records, err := svc.repo.FilterAttendance(ctx, Filter{StudentIDs: ids})
	if err != nil {
		return RosterAttendance{}, err
	}
	return RosterAttendance{Students: roster, Records: records}, nil
}

func (svc *service) Report(ctx context.Context, actor Actor, qf QueryFilter) ([]Attendance, error) {
	filter := Filter{From: qf.From, To: qf.To}
	if qf.StudentID != "" {
		filter.StudentIDs = []string{qf.StudentID}
	}

	// teachers cannot escape their roster via query params
	if actor.Role == core.RoleTeacher {
		roster, err := svc.studentRepo.FilterStudentsByTeacher(ctx, actor.ID)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(roster))
		for _, stu := range roster {
			if qf.StudentID == "" || qf.StudentID == stu.ID {
				ids = append(ids, stu.ID)
			}
		}
		filter.StudentIDs = ids
	}
	return svc.repo.FilterAttendance(ctx, filter)
}

// mark is the shared upsert: one record per (student, day), last write wins.
func (svc *service) mark(ctx context.Context, stu student.Student, day time.Time, status Status, method Method, loc *core.Location) (Attendance, error) {
	now := time.Now().UTC()

	att, err := svc.repo.GetAttendance(ctx, stu.ID, day)
	switch err {
	case nil:
		att.Status = status
		// manual re-marks only correct the status; facial provenance
		// (method + coordinates) sticks until another facial mark.
		if method == MethodFacial {
			att.Method = method
			att.Location = loc
		}
		att.MarkedAt = now
		att.UpdatedAt = now
		att, err = svc.repo.UpdateAttendance(ctx, att)
	case ErrNotFound:
		att, err = svc.repo.CreateAttendance(ctx, Attendance{
			StudentID: stu.ID,
			Date:      day,
			Status:    status,
			Method:    method,
			Location:  loc,
			MarkedAt:  now,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err != nil {
		return Attendance{}, err
	}

	if status == StatusAbsent {
		svc.sendAbsenceAlert(stu, day) // best-effort; the mark already persisted
	}
	return att, nil
}

func (svc *service) sendAbsenceAlert(stu student.Student, day time.Time) {
	body := fmt.Sprintf(
		"Dear Parent, Your child %s was marked absent on %s. Regards, School Attendance System",
		stu.Name, day.Format("Mon Jan 02 2006"),
	)
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: stu.ParentEmail}},
		Subject: "Attendance Alert for " + stu.Name,
		Body:    body,
	})
	if stu.ParentPhone != "" {
		svc.smsSvc.SendMessages(&core.SMSMessage{To: stu.ParentPhone, Body: body})
	}
	svc.log.Info("absence alert queued", map[string]interface{}{"student": stu.ID, "date": day.Format("2006-01-02")})
}
