package sqlitedb

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/billycuesta/nurayoga/core/billing"
)

const lastRolloverKey = "last_rollover_month"

type metaRepository struct {
	db *sqlx.DB
}

var _ billing.MetaRepository = (*metaRepository)(nil) // interface compliance check

func NewMetaRepository(db *sqlx.DB) billing.MetaRepository {
	return &metaRepository{db: db}
}

func (repo *metaRepository) GetLastRolloverMonth() (string, error) {
	var value string
	if err := repo.db.Get(&value, "SELECT value FROM meta WHERE key = ?", lastRolloverKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", errors.Wrap(err, "getting last rollover month")
	}
	return value, nil
}

func (repo *metaRepository) SetLastRolloverMonth(monthKey string) error {
	if _, err := repo.db.Exec(
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value",
		lastRolloverKey, monthKey); err != nil {
		return errors.Wrap(err, "setting last rollover month")
	}
	return nil
}
