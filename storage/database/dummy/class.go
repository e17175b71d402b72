package dummydb

import (
	"sort"

	"github.com/billycuesta/nurayoga/core/class"
)

// classRepository serves both class kinds from two independent tables, the
// recurring schedule template and the one-off sessions.
type classRepository struct {
	template *classTable
	oneOff   *classTable
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *DB) class.Repository {
	return &classRepository{template: db.template, oneOff: db.oneOff}
}

func (repo *classRepository) tableFor(kind class.Kind) *classTable {
	if kind == class.KindRecurring {
		return repo.template
	}
	return repo.oneOff
}

func (repo *classRepository) CreateClass(cls class.Class) (class.Class, error) {
	tbl := repo.tableFor(cls.Kind)
	tbl.Lock()
	defer tbl.Unlock()

	tbl.pk++
	cls.ID = tbl.pk
	tbl.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) QueryAllClasses(kind class.Kind) ([]class.Class, error) {
	tbl := repo.tableFor(kind)
	tbl.RLock()
	defer tbl.RUnlock()

	classes := make([]class.Class, 0, len(tbl.table))
	for _, cls := range tbl.table {
		classes = append(classes, *cls)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

func (repo *classRepository) GetClassByID(kind class.Kind, id int) (class.Class, error) {
	tbl := repo.tableFor(kind)
	tbl.RLock()
	defer tbl.RUnlock()

	if cls, ok := tbl.table[id]; ok {
		return *cls, nil
	}
	return class.Class{}, class.ErrNotFound
}

func (repo *classRepository) UpdateClass(cls class.Class) (class.Class, error) {
	tbl := repo.tableFor(cls.Kind)
	tbl.Lock()
	defer tbl.Unlock()

	if _, ok := tbl.table[cls.ID]; !ok {
		return class.Class{}, class.ErrNotFound
	}
	tbl.table[cls.ID] = &cls
	return cls, nil
}

func (repo *classRepository) DeleteClassByID(kind class.Kind, id int) error {
	tbl := repo.tableFor(kind)
	tbl.Lock()
	defer tbl.Unlock()
	delete(tbl.table, id)
	return nil
}

func (repo *classRepository) RestoreClass(cls class.Class) (class.Class, error) {
	tbl := repo.tableFor(cls.Kind)
	tbl.Lock()
	defer tbl.Unlock()

	tbl.table[cls.ID] = &cls
	if cls.ID > tbl.pk {
		tbl.pk = cls.ID
	}
	return cls, nil
}

func (repo *classRepository) ClearClasses(kind class.Kind) error {
	tbl := repo.tableFor(kind)
	tbl.Lock()
	defer tbl.Unlock()
	tbl.table = make(map[int]*class.Class)
	return nil
}
