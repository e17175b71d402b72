package sqlitedb

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/billycuesta/nurayoga/core/teacher"
)

type teacherRepository struct {
	db *sqlx.DB
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *sqlx.DB) teacher.Repository {
	return &teacherRepository{db: db}
}

type teacherRow struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Email       string    `db:"email"`
	Phone       string    `db:"phone"`
	Specialties string    `db:"specialties"`
	Bio         string    `db:"bio"`
	IsActive    bool      `db:"is_active"`
	HourlyRate  float64   `db:"hourly_rate"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func newTeacherRow(tchr teacher.Teacher) (teacherRow, error) {
	if tchr.Specialties == nil {
		tchr.Specialties = []string{}
	}
	specialties, err := json.Marshal(tchr.Specialties)
	if err != nil {
		return teacherRow{}, errors.Wrap(err, "encoding specialties")
	}
	return teacherRow{
		ID:          tchr.ID,
		Name:        tchr.Name,
		Email:       tchr.Email,
		Phone:       tchr.Phone,
		Specialties: string(specialties),
		Bio:         tchr.Bio,
		IsActive:    tchr.IsActive,
		HourlyRate:  tchr.HourlyRate,
		CreatedAt:   tchr.CreatedAt,
		UpdatedAt:   tchr.UpdatedAt,
	}, nil
}

func (row teacherRow) model() (teacher.Teacher, error) {
	tchr := teacher.Teacher{
		ID:         row.ID,
		Name:       row.Name,
		Email:      row.Email,
		Phone:      row.Phone,
		Bio:        row.Bio,
		IsActive:   row.IsActive,
		HourlyRate: row.HourlyRate,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
	if err := json.Unmarshal([]byte(row.Specialties), &tchr.Specialties); err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "decoding specialties")
	}
	return tchr, nil
}

func (repo *teacherRepository) CreateTeacher(tchr teacher.Teacher) (teacher.Teacher, error) {
	row, err := newTeacherRow(tchr)
	if err != nil {
		return teacher.Teacher{}, err
	}

	res, err := repo.db.NamedExec(
		`INSERT INTO teachers (name, email, phone, specialties, bio, is_active, hourly_rate, created_at, updated_at)
		 VALUES (:name, :email, :phone, :specialties, :bio, :is_active, :hourly_rate, :created_at, :updated_at)`, row)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "creating teacher")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "creating teacher")
	}
	tchr.ID = int(id)
	return tchr, nil
}

func (repo *teacherRepository) QueryAllTeachers() ([]teacher.Teacher, error) {
	var rows []teacherRow
	if err := repo.db.Select(&rows, "SELECT * FROM teachers ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying teachers")
	}

	teachers := make([]teacher.Teacher, 0, len(rows))
	for _, row := range rows {
		tchr, err := row.model()
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, tchr)
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(id int) (teacher.Teacher, error) {
	var row teacherRow
	if err := repo.db.Get(&row, "SELECT * FROM teachers WHERE id = ?", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher")
	}
	return row.model()
}

func (repo *teacherRepository) GetTeacherByName(name string) (teacher.Teacher, error) {
	var row teacherRow
	if err := repo.db.Get(&row, "SELECT * FROM teachers WHERE name = ? ORDER BY id LIMIT 1", name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, errors.Wrap(err, "getting teacher by name")
	}
	return row.model()
}

func (repo *teacherRepository) UpdateTeacher(tchr teacher.Teacher) (teacher.Teacher, error) {
	row, err := newTeacherRow(tchr)
	if err != nil {
		return teacher.Teacher{}, err
	}

	res, err := repo.db.NamedExec(
		`UPDATE teachers SET name = :name, email = :email, phone = :phone, specialties = :specialties,
		 bio = :bio, is_active = :is_active, hourly_rate = :hourly_rate, updated_at = :updated_at
		 WHERE id = :id`, row)
	if err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "updating teacher")
	}
	if n, err := res.RowsAffected(); err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "updating teacher")
	} else if n == 0 {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	return tchr, nil
}

func (repo *teacherRepository) DeleteTeacherByID(id int) error {
	if _, err := repo.db.Exec("DELETE FROM teachers WHERE id = ?", id); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return nil
}

func (repo *teacherRepository) RestoreTeacher(tchr teacher.Teacher) (teacher.Teacher, error) {
	row, err := newTeacherRow(tchr)
	if err != nil {
		return teacher.Teacher{}, err
	}

	if _, err := repo.db.NamedExec(
		`INSERT INTO teachers (id, name, email, phone, specialties, bio, is_active, hourly_rate, created_at, updated_at)
		 VALUES (:id, :name, :email, :phone, :specialties, :bio, :is_active, :hourly_rate, :created_at, :updated_at)`, row); err != nil {
		return teacher.Teacher{}, errors.Wrap(err, "restoring teacher")
	}
	return tchr, nil
}

func (repo *teacherRepository) ClearTeachers() error {
	if _, err := repo.db.Exec("DELETE FROM teachers"); err != nil {
		return errors.Wrap(err, "clearing teachers")
	}
	return nil
}
