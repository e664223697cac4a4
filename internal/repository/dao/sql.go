package dao

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const createRecordsTable = `CREATE TABLE IF NOT EXISTS records (
	record_key TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLRecordDAO stores records through database/sql. It is used with the
// pure Go SQLite driver.
type SQLRecordDAO struct {
	db *sql.DB
}

func NewSQLRecordDAO(db *sql.DB) *SQLRecordDAO {
	return &SQLRecordDAO{
		db: db,
	}
}

func (d *SQLRecordDAO) InitTables(ctx context.Context) error {
	if _, err := d.db.ExecContext(ctx, createRecordsTable); err != nil {
		return fmt.Errorf("create records table: %w", err)
	}

	return nil
}

func (d *SQLRecordDAO) Get(ctx context.Context, key string) (string, error) {
	var value string

	err := d.db.QueryRowContext(ctx, `SELECT value FROM records WHERE record_key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrRecordNotFound
		}

		return "", err
	}

	return value, nil
}

func (d *SQLRecordDAO) Set(ctx context.Context, key, value string) error {
	now := time.Now().UTC().UnixMilli()

	_, err := d.db.ExecContext(
		ctx,
		`INSERT INTO records (record_key, value, created_at, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(record_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		now,
		now,
	)

	return err
}

func (d *SQLRecordDAO) Remove(ctx context.Context, key string) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM records WHERE record_key = ?`, key)

	return err
}

func (d *SQLRecordDAO) Close() error {
	return d.db.Close()
}
