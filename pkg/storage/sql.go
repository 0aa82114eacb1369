package storage

import (
	"fmt"
	"time"

	"github.com/raykavin/technicals/pkg/core"
	"github.com/samber/lo"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IndicatorColumn is the table row for one stored column
type IndicatorColumn struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"column:series_key;uniqueIndex:idx_key_column;not null"`
	Column    string `gorm:"column:column_name;uniqueIndex:idx_key_column;not null"`
	Values    string `gorm:"column:series_values;type:text"`
	UpdatedAt time.Time
}

// SQLStorage implements core.ColumnStorage using a SQL database via GORM
type SQLStorage struct {
	db *gorm.DB
}

// Config holds the configuration for SQL database connections
type Config struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a default configuration for SQL connections
func DefaultConfig() Config {
	return Config{
		MaxIdleConns:    2,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
	}
}

// FromSQLite creates a SQLite backed storage
func FromSQLite(dbPath string, opts ...gorm.Option) (*SQLStorage, error) {
	return FromSQL(sqlite.Open(dbPath), DefaultConfig(), opts...)
}

// FromSQL creates a storage on top of any GORM dialect
func FromSQL(dialect gorm.Dialector, config Config, opts ...gorm.Option) (*SQLStorage, error) {
	db, err := gorm.Open(dialect, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(config.MaxIdleConns)
	sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err = db.AutoMigrate(&IndicatorColumn{}); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLStorage{db: db}, nil
}

// Save upserts every column under key in a single transaction
func (s *SQLStorage) Save(key string, columns core.Columns) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if len(columns) == 0 {
		return nil
	}

	rows := lo.Map(columns.Names(), func(name string, _ int) IndicatorColumn {
		return IndicatorColumn{
			Key:    key,
			Column: name,
			Values: encodeValues(columns[name]),
		}
	})

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "series_key"}, {Name: "column_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"series_values", "updated_at"}),
		}).Create(&rows)
		if result.Error != nil {
			return fmt.Errorf("failed to store columns: %w", result.Error)
		}
		return nil
	})
}

// Load returns every column stored under key. An unknown key yields an empty set.
func (s *SQLStorage) Load(key string) (core.Columns, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var rows []IndicatorColumn
	if result := s.db.Where("series_key = ?", key).Find(&rows); result.Error != nil {
		return nil, fmt.Errorf("failed to fetch columns: %w", result.Error)
	}

	columns := make(core.Columns, len(rows))
	for _, row := range rows {
		values, err := decodeValues(row.Values)
		if err != nil {
			return nil, fmt.Errorf("%s/%s: %w", row.Key, row.Column, err)
		}
		columns[row.Column] = values
	}

	return columns, nil
}

// Keys lists the stored keys in lexical order
func (s *SQLStorage) Keys() ([]string, error) {
	var keys []string
	result := s.db.Model(&IndicatorColumn{}).Distinct("series_key").Order("series_key").Pluck("series_key", &keys)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fetch keys: %w", result.Error)
	}
	return keys, nil
}

// Close closes the database connection
func (s *SQLStorage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
