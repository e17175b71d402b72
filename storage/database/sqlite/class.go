package sqlitedb

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/billycuesta/nurayoga/core/class"
)

// classRepository serves both class kinds; the recurring schedule template
// and the one-off sessions live in separate tables with independent id
// sequences.
type classRepository struct {
	db *sqlx.DB
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *sqlx.DB) class.Repository {
	return &classRepository{db: db}
}

type classRow struct {
	ID        int       `db:"id"`
	Name      string    `db:"name"`
	Teacher   string    `db:"teacher"`
	Capacity  int       `db:"capacity"`
	Time      string    `db:"time"`
	Day       int       `db:"day"`
	Date      string    `db:"date"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func newClassRow(cls class.Class) classRow {
	return classRow{
		ID:        cls.ID,
		Name:      cls.Name,
		Teacher:   cls.Teacher,
		Capacity:  cls.Capacity,
		Time:      cls.Time,
		Day:       cls.Day,
		Date:      cls.Date,
		CreatedAt: cls.CreatedAt,
		UpdatedAt: cls.UpdatedAt,
	}
}

func (row classRow) model(kind class.Kind) class.Class {
	return class.Class{
		ID:        row.ID,
		Kind:      kind,
		Name:      row.Name,
		Teacher:   row.Teacher,
		Capacity:  row.Capacity,
		Time:      row.Time,
		Day:       row.Day,
		Date:      row.Date,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func tableFor(kind class.Kind) string {
	if kind == class.KindRecurring {
		return "schedule_template"
	}
	return "one_off_classes"
}

func (repo *classRepository) CreateClass(cls class.Class) (class.Class, error) {
	var query string
	if cls.Kind == class.KindRecurring {
		query = `INSERT INTO schedule_template (name, teacher, capacity, time, day, created_at, updated_at)
			 VALUES (:name, :teacher, :capacity, :time, :day, :created_at, :updated_at)`
	} else {
		query = `INSERT INTO one_off_classes (name, teacher, capacity, time, date, created_at, updated_at)
			 VALUES (:name, :teacher, :capacity, :time, :date, :created_at, :updated_at)`
	}

	res, err := repo.db.NamedExec(query, newClassRow(cls))
	if err != nil {
		return class.Class{}, errors.Wrap(err, "creating class")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return class.Class{}, errors.Wrap(err, "creating class")
	}
	cls.ID = int(id)
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(kind class.Kind) ([]class.Class, error) {
	query := "SELECT id, name, teacher, capacity, time, day, '' AS date, created_at, updated_at FROM schedule_template ORDER BY id"
	if kind == class.KindOneOff {
		query = "SELECT id, name, teacher, capacity, time, 0 AS day, date, created_at, updated_at FROM one_off_classes ORDER BY id"
	}

	var rows []classRow
	if err := repo.db.Select(&rows, query); err != nil {
		return nil, errors.Wrap(err, "querying classes")
	}

	classes := make([]class.Class, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, row.model(kind))
	}
	return classes, nil
}

func (repo *classRepository) GetClassByID(kind class.Kind, id int) (class.Class, error) {
	query := "SELECT id, name, teacher, capacity, time, day, '' AS date, created_at, updated_at FROM schedule_template WHERE id = ?"
	if kind == class.KindOneOff {
		query = "SELECT id, name, teacher, capacity, time, 0 AS day, date, created_at, updated_at FROM one_off_classes WHERE id = ?"
	}

	var row classRow
	if err := repo.db.Get(&row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return class.Class{}, class.ErrNotFound
		}
		return class.Class{}, errors.Wrap(err, "getting class")
	}
	return row.model(kind), nil
}

func (repo *classRepository) UpdateClass(cls class.Class) (class.Class, error) {
	var query string
	if cls.Kind == class.KindRecurring {
		query = `UPDATE schedule_template SET name = :name, teacher = :teacher, capacity = :capacity,
			 time = :time, day = :day, updated_at = :updated_at WHERE id = :id`
	} else {
		query = `UPDATE one_off_classes SET name = :name, teacher = :teacher, capacity = :capacity,
			 time = :time, date = :date, updated_at = :updated_at WHERE id = :id`
	}

	res, err := repo.db.NamedExec(query, newClassRow(cls))
	if err != nil {
		return class.Class{}, errors.Wrap(err, "updating class")
	}
	if n, err := res.RowsAffected(); err != nil {
		return class.Class{}, errors.Wrap(err, "updating class")
	} else if n == 0 {
		return class.Class{}, class.ErrNotFound
	}
	return cls, nil
}

func (repo *classRepository) DeleteClassByID(kind class.Kind, id int) error {
	if _, err := repo.db.Exec("DELETE FROM "+tableFor(kind)+" WHERE id = ?", id); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return nil
}

func (repo *classRepository) RestoreClass(cls class.Class) (class.Class, error) {
	var query string
	if cls.Kind == class.KindRecurring {
		query = `INSERT INTO schedule_template (id, name, teacher, capacity, time, day, created_at, updated_at)
			 VALUES (:id, :name, :teacher, :capacity, :time, :day, :created_at, :updated_at)`
	} else {
		query = `INSERT INTO one_off_classes (id, name, teacher, capacity, time, date, created_at, updated_at)
			 VALUES (:id, :name, :teacher, :capacity, :time, :date, :created_at, :updated_at)`
	}

	if _, err := repo.db.NamedExec(query, newClassRow(cls)); err != nil {
		return class.Class{}, errors.Wrap(err, "restoring class")
	}
	return cls, nil
}

func (repo *classRepository) ClearClasses(kind class.Kind) error {
	if _, err := repo.db.Exec("DELETE FROM " + tableFor(kind)); err != nil {
		return errors.Wrap(err, "clearing classes")
	}
	return nil
}
