package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/mahudhurio/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) GetAttendance(ctx context.Context, studentID string, date time.Time) (attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, att := range repo.db.table {
		if att.StudentID == studentID && att.Date.Equal(date) {
			return *att, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrNotFound
}

func (repo *attendanceRepository) CreateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	att.ID = uuid.New().String()
	repo.db.table[att.ID] = &att
	return att, nil
}

func (repo *attendanceRepository) UpdateAttendance(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[att.ID]; !ok {
		return attendance.Attendance{}, attendance.ErrNotFound
	}
	repo.db.table[att.ID] = &att
	return att, nil
}

func (repo *attendanceRepository) FilterAttendance(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	records := make([]attendance.Attendance, 0)
	for _, att := range repo.db.table {
		if filter.StudentIDs != nil && !contains(filter.StudentIDs, att.StudentID) {
			continue
		}
		if !filter.From.IsZero() && att.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && att.Date.After(filter.To) {
			continue
		}
		records = append(records, *att)
	}
	// newest date first
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date.Equal(records[j].Date) {
			return records[i].MarkedAt.After(records[j].MarkedAt)
		}
		return records[i].Date.After(records[j].Date)
	})
	return records, nil
}

func (repo *attendanceRepository) SaveFaceData(ctx context.Context, fd attendance.FaceData) (attendance.FaceData, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if prev, ok := repo.db.faceData[fd.StudentID]; ok {
		fd.ID = prev.ID
	} else {
		fd.ID = uuid.New().String()
	}
	repo.db.faceData[fd.StudentID] = &fd
	return fd, nil
}

func (repo *attendanceRepository) GetFaceDataByStudent(ctx context.Context, studentID string) (attendance.FaceData, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if fd, ok := repo.db.faceData[studentID]; ok {
		return *fd, nil
	}
	return attendance.FaceData{}, attendance.ErrFaceDataNotFound
}

func contains(ids []string, id string) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
