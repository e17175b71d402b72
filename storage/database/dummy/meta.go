package dummydb

import "github.com/billycuesta/nurayoga/core/billing"

const lastRolloverKey = "last_rollover_month"

type metaRepository struct {
	db *metaTable
}

var _ billing.MetaRepository = (*metaRepository)(nil) // interface compliance check

func NewMetaRepository(db *DB) billing.MetaRepository {
	return &metaRepository{db: db.meta}
}

func (repo *metaRepository) GetLastRolloverMonth() (string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.table[lastRolloverKey], nil
}

func (repo *metaRepository) SetLastRolloverMonth(monthKey string) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[lastRolloverKey] = monthKey
	return nil
}
