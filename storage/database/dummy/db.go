package dummydb

import (
	"sync"

	"github.com/trezcool/mahudhurio/core/attendance"
	"github.com/trezcool/mahudhurio/core/leave"
	"github.com/trezcool/mahudhurio/core/school"
	"github.com/trezcool/mahudhurio/core/student"
	"github.com/trezcool/mahudhurio/core/teacher"
)

// in-memory document store; test & dev stand-in for mongo
type (
	DB struct {
		school     *schoolTable
		teacher    *teacherTable
		student    *studentTable
		attendance *attendanceTable
		leave      *leaveTable
	}

	schoolTable struct {
		sync.RWMutex
		table map[string]*school.School
	}

	teacherTable struct {
		sync.RWMutex
		table map[string]*teacher.Teacher
		seq   map[string]int // per-school teacher sequence counters
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}

	attendanceTable struct {
		sync.RWMutex
		table    map[string]*attendance.Attendance
		faceData map[string]*attendance.FaceData // keyed by student ID
	}

	leaveTable struct {
		sync.RWMutex
		table map[string]*leave.Leave
	}
)

func Open() (*DB, error) {
	db := &DB{
		school:  &schoolTable{table: make(map[string]*school.School)},
		teacher: &teacherTable{table: make(map[string]*teacher.Teacher), seq: make(map[string]int)},
		student: &studentTable{table: make(map[string]*student.Student)},
		attendance: &attendanceTable{
			table:    make(map[string]*attendance.Attendance),
			faceData: make(map[string]*attendance.FaceData),
		},
		leave: &leaveTable{table: make(map[string]*leave.Leave)},
	}
	return db, nil
}
