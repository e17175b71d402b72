package dummydb

import (
	"sort"

	"github.com/billycuesta/nurayoga/core/enrollment"
)

type enrollmentRepository struct {
	oneOff    *enrollmentTable
	recurring *enrollmentTable
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{oneOff: db.oneOffEnr, recurring: db.recurringEnr}
}

func create(tbl *enrollmentTable, enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	tbl.Lock()
	defer tbl.Unlock()

	tbl.pk++
	enr.ID = tbl.pk
	tbl.table[enr.ID] = &enr
	return enr, nil
}

func query(tbl *enrollmentTable, keep func(enrollment.Enrollment) bool) []enrollment.Enrollment {
	tbl.RLock()
	defer tbl.RUnlock()

	enrs := make([]enrollment.Enrollment, 0, len(tbl.table))
	for _, enr := range tbl.table {
		if keep == nil || keep(*enr) {
			enrs = append(enrs, *enr)
		}
	}
	sort.Slice(enrs, func(i, j int) bool { return enrs[i].ID < enrs[j].ID })
	return enrs
}

func deleteWhere(tbl *enrollmentTable, match func(enrollment.Enrollment) bool) {
	tbl.Lock()
	defer tbl.Unlock()

	for id, enr := range tbl.table {
		if match(*enr) {
			delete(tbl.table, id)
		}
	}
}

func restore(tbl *enrollmentTable, enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	tbl.Lock()
	defer tbl.Unlock()

	tbl.table[enr.ID] = &enr
	if enr.ID > tbl.pk {
		tbl.pk = enr.ID
	}
	return enr, nil
}

func (repo *enrollmentRepository) CreateOneOffEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	return create(repo.oneOff, enr)
}

func (repo *enrollmentRepository) CreateRecurringEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	return create(repo.recurring, enr)
}

func (repo *enrollmentRepository) QueryOneOffEnrollments() ([]enrollment.Enrollment, error) {
	return query(repo.oneOff, nil), nil
}

func (repo *enrollmentRepository) QueryRecurringEnrollments() ([]enrollment.Enrollment, error) {
	return query(repo.recurring, nil), nil
}

func (repo *enrollmentRepository) QueryOneOffEnrollmentsByStudentID(studentID int) ([]enrollment.Enrollment, error) {
	return query(repo.oneOff, func(enr enrollment.Enrollment) bool { return enr.StudentID == studentID }), nil
}

func (repo *enrollmentRepository) QueryRecurringEnrollmentsByStudentID(studentID int) ([]enrollment.Enrollment, error) {
	return query(repo.recurring, func(enr enrollment.Enrollment) bool { return enr.StudentID == studentID }), nil
}

func (repo *enrollmentRepository) DeleteOneOffEnrollmentByID(id int) error {
	repo.oneOff.Lock()
	defer repo.oneOff.Unlock()
	delete(repo.oneOff.table, id)
	return nil
}

func (repo *enrollmentRepository) DeleteRecurringEnrollmentByID(id int) error {
	repo.recurring.Lock()
	defer repo.recurring.Unlock()
	delete(repo.recurring.table, id)
	return nil
}

func (repo *enrollmentRepository) DeleteEnrollmentsByStudentID(studentID int) error {
	match := func(enr enrollment.Enrollment) bool { return enr.StudentID == studentID }
	deleteWhere(repo.oneOff, match)
	deleteWhere(repo.recurring, match)
	return nil
}

func (repo *enrollmentRepository) DeleteEnrollmentsByTemplateID(templateID int) error {
	deleteWhere(repo.recurring, func(enr enrollment.Enrollment) bool { return enr.TemplateID == templateID })
	return nil
}

func (repo *enrollmentRepository) DeleteEnrollmentsByOneOffClassID(classID int) error {
	deleteWhere(repo.oneOff, func(enr enrollment.Enrollment) bool { return enr.OneOffClassID == classID })
	return nil
}

func (repo *enrollmentRepository) RestoreOneOffEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	return restore(repo.oneOff, enr)
}

func (repo *enrollmentRepository) RestoreRecurringEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	return restore(repo.recurring, enr)
}

func (repo *enrollmentRepository) ClearEnrollments() error {
	repo.oneOff.Lock()
	repo.oneOff.table = make(map[int]*enrollment.Enrollment)
	repo.oneOff.Unlock()

	repo.recurring.Lock()
	repo.recurring.table = make(map[int]*enrollment.Enrollment)
	repo.recurring.Unlock()
	return nil
}
