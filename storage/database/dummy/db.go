package dummydb

import (
	"sync"

	"github.com/billycuesta/nurayoga/core/class"
	"github.com/billycuesta/nurayoga/core/enrollment"
	"github.com/billycuesta/nurayoga/core/student"
	"github.com/billycuesta/nurayoga/core/teacher"
)

type (
	DB struct {
		student      *studentTable
		teacher      *teacherTable
		template     *classTable
		oneOff       *classTable
		oneOffEnr    *enrollmentTable
		recurringEnr *enrollmentTable
		meta         *metaTable
	}

	studentTable struct {
		sync.RWMutex
		table map[int]*student.Student
		pk    int
	}

	teacherTable struct {
		sync.RWMutex
		table map[int]*teacher.Teacher
		pk    int
	}

	classTable struct {
		sync.RWMutex
		table map[int]*class.Class
		pk    int
	}

	enrollmentTable struct {
		sync.RWMutex
		table map[int]*enrollment.Enrollment
		pk    int
	}

	metaTable struct {
		sync.RWMutex
		table map[string]string
	}
)

func Open() (*DB, error) {
	db := &DB{
		student:      &studentTable{table: make(map[int]*student.Student)},
		teacher:      &teacherTable{table: make(map[int]*teacher.Teacher)},
		template:     &classTable{table: make(map[int]*class.Class)},
		oneOff:       &classTable{table: make(map[int]*class.Class)},
		oneOffEnr:    &enrollmentTable{table: make(map[int]*enrollment.Enrollment)},
		recurringEnr: &enrollmentTable{table: make(map[int]*enrollment.Enrollment)},
		meta:         &metaTable{table: make(map[string]string)},
	}
	return db, nil
}
