package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("record not found")
)

// Record is one key/value blob. Values are JSON documents or plain strings.
type Record struct {
	Key   string `gorm:"column:record_key;primaryKey"`
	Value string `gorm:"type:text;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Record) TableName() string {
	return "records"
}

type RecordDAO struct {
	db *gorm.DB
}

func NewRecordDAO(db *gorm.DB) *RecordDAO {
	return &RecordDAO{
		db: db,
	}
}

func (d *RecordDAO) Get(ctx context.Context, key string) (string, error) {
	var record Record

	result := d.db.WithContext(ctx).First(&record, "record_key = ?", key)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrRecordNotFound
		}

		return "", result.Error
	}

	return record.Value, nil
}

// Set inserts the record, falling back to an update when the key already exists.
func (d *RecordDAO) Set(ctx context.Context, key, value string) error {
	result := d.db.WithContext(ctx).Create(&Record{Key: key, Value: value})
	if result.Error == nil {
		return nil
	}

	var err *pgconn.PgError
	if !errors.As(result.Error, &err) || err.Code != pgerrcode.UniqueViolation {
		return result.Error
	}

	result = d.db.WithContext(ctx).
		Model(&Record{}).
		Where("record_key = ?", key).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()})

	return result.Error
}

func (d *RecordDAO) Remove(ctx context.Context, key string) error {
	result := d.db.WithContext(ctx).Delete(&Record{}, "record_key = ?", key)

	return result.Error
}
