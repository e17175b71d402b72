package dummydb

import (
	"sort"
	"time"

	"github.com/billycuesta/nurayoga/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	students := make([]student.Student, 0, len(repo.db.table))
	for _, std := range repo.db.table {
		students = append(students, clone(*std))
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pk++
	std.ID = repo.db.pk
	stored := clone(std)
	repo.db.table[std.ID] = &stored
	return std, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if std, ok := repo.db.table[id]; ok {
		return clone(*std), nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[std.ID]; !ok {
		return student.Student{}, student.ErrNotFound
	}
	stored := clone(std)
	repo.db.table[std.ID] = &stored
	return std, nil
}

func (repo *studentRepository) DeleteStudentByID(id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	delete(repo.db.table, id)
	return nil
}

func (repo *studentRepository) RestoreStudent(std student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	stored := clone(std)
	repo.db.table[std.ID] = &stored
	if std.ID > repo.db.pk {
		repo.db.pk = std.ID
	}
	return std, nil
}

func (repo *studentRepository) ClearStudents() error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table = make(map[int]*student.Student)
	return nil
}

// clone deep-copies the payments map so callers never alias stored state.
func clone(std student.Student) student.Student {
	payments := make(map[string]*time.Time, len(std.Payments))
	for key, ts := range std.Payments {
		payments[key] = ts
	}
	std.Payments = payments
	return std
}
