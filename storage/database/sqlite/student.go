package sqlitedb

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/billycuesta/nurayoga/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

// studentRow flattens Student for sqlx; the payments ledger is stored as a
// JSON object keyed by "YYYY-MM".
type studentRow struct {
	ID          int        `db:"id"`
	Name        string     `db:"name"`
	Email       string     `db:"email"`
	Phone       string     `db:"phone"`
	EnrolledAt  time.Time  `db:"enrolled_at"`
	WithdrawnAt *time.Time `db:"withdrawn_at"`
	Payments    string     `db:"payments"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

func newStudentRow(std student.Student) (studentRow, error) {
	payments, err := json.Marshal(std.Payments)
	if err != nil {
		return studentRow{}, errors.Wrap(err, "encoding payments")
	}
	return studentRow{
		ID:          std.ID,
		Name:        std.Name,
		Email:       std.Email,
		Phone:       std.Phone,
		EnrolledAt:  std.EnrolledAt,
		WithdrawnAt: std.WithdrawnAt,
		Payments:    string(payments),
		CreatedAt:   std.CreatedAt,
		UpdatedAt:   std.UpdatedAt,
	}, nil
}

func (row studentRow) model() (student.Student, error) {
	std := student.Student{
		ID:          row.ID,
		Name:        row.Name,
		Email:       row.Email,
		Phone:       row.Phone,
		EnrolledAt:  row.EnrolledAt,
		WithdrawnAt: row.WithdrawnAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.Payments), &std.Payments); err != nil {
		return student.Student{}, errors.Wrap(err, "decoding payments")
	}
	if std.Payments == nil {
		std.Payments = make(map[string]*time.Time)
	}
	return std, nil
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	row, err := newStudentRow(std)
	if err != nil {
		return student.Student{}, err
	}

	res, err := repo.db.NamedExec(
		`INSERT INTO students (name, email, phone, enrolled_at, withdrawn_at, payments, created_at, updated_at)
		 VALUES (:name, :email, :phone, :enrolled_at, :withdrawn_at, :payments, :created_at, :updated_at)`, row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	std.ID = int(id)
	return std, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.Select(&rows, "SELECT * FROM students ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}

	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		std, err := row.model()
		if err != nil {
			return nil, err
		}
		students = append(students, std)
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(id int) (student.Student, error) {
	var row studentRow
	if err := repo.db.Get(&row, "SELECT * FROM students WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return row.model()
}

func (repo *studentRepository) UpdateStudent(std student.Student) (student.Student, error) {
	row, err := newStudentRow(std)
	if err != nil {
		return student.Student{}, err
	}

	res, err := repo.db.NamedExec(
		`UPDATE students SET name = :name, email = :email, phone = :phone, enrolled_at = :enrolled_at,
		 withdrawn_at = :withdrawn_at, payments = :payments, updated_at = :updated_at
		 WHERE id = :id`, row)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	} else if n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}

func (repo *studentRepository) DeleteStudentByID(id int) error {
	if _, err := repo.db.Exec("DELETE FROM students WHERE id = ?", id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return nil
}

func (repo *studentRepository) RestoreStudent(std student.Student) (student.Student, error) {
	row, err := newStudentRow(std)
	if err != nil {
		return student.Student{}, err
	}

	if _, err := repo.db.NamedExec(
		`INSERT INTO students (id, name, email, phone, enrolled_at, withdrawn_at, payments, created_at, updated_at)
		 VALUES (:id, :name, :email, :phone, :enrolled_at, :withdrawn_at, :payments, :created_at, :updated_at)`, row); err != nil {
		return student.Student{}, errors.Wrap(err, "restoring student")
	}
	return std, nil
}

func (repo *studentRepository) ClearStudents() error {
	if _, err := repo.db.Exec("DELETE FROM students"); err != nil {
		return errors.Wrap(err, "clearing students")
	}
	return nil
}
