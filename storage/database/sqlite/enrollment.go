package sqlitedb

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/billycuesta/nurayoga/core/enrollment"
)

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *sqlx.DB) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

type enrollmentRow struct {
	ID            int    `db:"id"`
	StudentID     int    `db:"student_id"`
	TemplateID    int    `db:"template_id"`
	OneOffClassID int    `db:"one_off_class_id"`
	Date          string `db:"date"`
}

func (row enrollmentRow) model() enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:            row.ID,
		StudentID:     row.StudentID,
		TemplateID:    row.TemplateID,
		OneOffClassID: row.OneOffClassID,
		Date:          row.Date,
	}
}

func (repo *enrollmentRepository) CreateOneOffEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	res, err := repo.db.Exec(
		"INSERT INTO inscriptions (student_id, one_off_class_id, date) VALUES (?, ?, ?)",
		enr.StudentID, enr.OneOffClassID, enr.Date)
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	enr.ID = int(id)
	return enr, nil
}

func (repo *enrollmentRepository) CreateRecurringEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	res, err := repo.db.Exec(
		"INSERT INTO recurring_inscriptions (student_id, template_id) VALUES (?, ?)",
		enr.StudentID, enr.TemplateID)
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	enr.ID = int(id)
	return enr, nil
}

func (repo *enrollmentRepository) selectEnrollments(query string, args ...interface{}) ([]enrollment.Enrollment, error) {
	var rows []enrollmentRow
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}

	enrs := make([]enrollment.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrs = append(enrs, row.model())
	}
	return enrs, nil
}

func (repo *enrollmentRepository) QueryOneOffEnrollments() ([]enrollment.Enrollment, error) {
	return repo.selectEnrollments(
		"SELECT id, student_id, 0 AS template_id, one_off_class_id, date FROM inscriptions ORDER BY id")
}

func (repo *enrollmentRepository) QueryRecurringEnrollments() ([]enrollment.Enrollment, error) {
	return repo.selectEnrollments(
		"SELECT id, student_id, template_id, 0 AS one_off_class_id, '' AS date FROM recurring_inscriptions ORDER BY id")
}

func (repo *enrollmentRepository) QueryOneOffEnrollmentsByStudentID(studentID int) ([]enrollment.Enrollment, error) {
	return repo.selectEnrollments(
		"SELECT id, student_id, 0 AS template_id, one_off_class_id, date FROM inscriptions WHERE student_id = ? ORDER BY id", studentID)
}

func (repo *enrollmentRepository) QueryRecurringEnrollmentsByStudentID(studentID int) ([]enrollment.Enrollment, error) {
	return repo.selectEnrollments(
		"SELECT id, student_id, template_id, 0 AS one_off_class_id, '' AS date FROM recurring_inscriptions WHERE student_id = ? ORDER BY id", studentID)
}

func (repo *enrollmentRepository) DeleteOneOffEnrollmentByID(id int) error {
	if _, err := repo.db.Exec("DELETE FROM inscriptions WHERE id = ?", id); err != nil {
		return errors.Wrap(err, "deleting enrollment")
	}
	return nil
}

func (repo *enrollmentRepository) DeleteRecurringEnrollmentByID(id int) error {
	if _, err := repo.db.Exec("DELETE FROM recurring_inscriptions WHERE id = ?", id); err != nil {
		return errors.Wrap(err, "deleting enrollment")
	}
	return nil
}

func (repo *enrollmentRepository) DeleteEnrollmentsByStudentID(studentID int) error {
	if _, err := repo.db.Exec("DELETE FROM inscriptions WHERE student_id = ?", studentID); err != nil {
		return errors.Wrap(err, "deleting enrollments")
	}
	if _, err := repo.db.Exec("DELETE FROM recurring_inscriptions WHERE student_id = ?", studentID); err != nil {
		return errors.Wrap(err, "deleting enrollments")
	}
	return nil
}

func (repo *enrollmentRepository) DeleteEnrollmentsByTemplateID(templateID int) error {
	if _, err := repo.db.Exec("DELETE FROM recurring_inscriptions WHERE template_id = ?", templateID); err != nil {
		return errors.Wrap(err, "deleting enrollments")
	}
	return nil
}

func (repo *enrollmentRepository) DeleteEnrollmentsByOneOffClassID(classID int) error {
	if _, err := repo.db.Exec("DELETE FROM inscriptions WHERE one_off_class_id = ?", classID); err != nil {
		return errors.Wrap(err, "deleting enrollments")
	}
	return nil
}

func (repo *enrollmentRepository) RestoreOneOffEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	if _, err := repo.db.Exec(
		"INSERT INTO inscriptions (id, student_id, one_off_class_id, date) VALUES (?, ?, ?, ?)",
		enr.ID, enr.StudentID, enr.OneOffClassID, enr.Date); err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "restoring enrollment")
	}
	return enr, nil
}

func (repo *enrollmentRepository) RestoreRecurringEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	if _, err := repo.db.Exec(
		"INSERT INTO recurring_inscriptions (id, student_id, template_id) VALUES (?, ?, ?)",
		enr.ID, enr.StudentID, enr.TemplateID); err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "restoring enrollment")
	}
	return enr, nil
}

func (repo *enrollmentRepository) ClearEnrollments() error {
	if _, err := repo.db.Exec("DELETE FROM inscriptions"); err != nil {
		return errors.Wrap(err, "clearing enrollments")
	}
	if _, err := repo.db.Exec("DELETE FROM recurring_inscriptions"); err != nil {
		return errors.Wrap(err, "clearing enrollments")
	}
	return nil
}
