package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/raykavin/technicals/pkg/core"
	"github.com/samber/lo"
	"github.com/tidwall/buntdb"
)

const (
	// KeyIndexName orders records by their column key
	KeyIndexName = "key_index"

	keySeparator = "/"
)

// ErrInvalidKey is returned for empty keys or keys containing the separator
var ErrInvalidKey = errors.New("invalid storage key")

// BuntStorage implements core.ColumnStorage using BuntDB
type BuntStorage struct {
	db  *buntdb.DB
	now func() time.Time
}

// BuntConfig holds configuration options for BuntDB
type BuntConfig struct {
	// SyncPolicy determines how often data is synchronized to disk
	SyncPolicy buntdb.SyncPolicy
}

// DefaultBuntConfig returns the default configuration for BuntDB
func DefaultBuntConfig() BuntConfig {
	return BuntConfig{
		SyncPolicy: buntdb.EverySecond,
	}
}

// FromMemory creates an in-memory storage
func FromMemory() (*BuntStorage, error) {
	return NewBuntStorage(":memory:", DefaultBuntConfig())
}

// FromFile creates a file-based storage
func FromFile(file string) (*BuntStorage, error) {
	return NewBuntStorage(file, DefaultBuntConfig())
}

// NewBuntStorage creates a new BuntDB storage instance with the specified configuration
func NewBuntStorage(sourceFile string, config BuntConfig) (*BuntStorage, error) {
	db, err := buntdb.Open(sourceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open buntdb: %w", err)
	}

	if err := db.SetConfig(buntdb.Config{SyncPolicy: config.SyncPolicy}); err != nil {
		return nil, fmt.Errorf("failed to configure buntdb: %w", err)
	}

	if err := db.CreateIndex(KeyIndexName, "*", buntdb.IndexJSONCaseSensitive("key")); err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &BuntStorage{db: db, now: time.Now}, nil
}

func recordID(key, column string) string {
	return key + keySeparator + column
}

func validateKey(key string) error {
	if key == "" || strings.Contains(key, keySeparator) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// Save stores every column under key in a single transaction
func (b *BuntStorage) Save(key string, columns core.Columns) error {
	if err := validateKey(key); err != nil {
		return err
	}

	updatedAt := b.now().UTC()

	return b.db.Update(func(tx *buntdb.Tx) error {
		for _, name := range columns.Names() {
			content, err := json.Marshal(columnRecord{
				Key:       key,
				Column:    name,
				Values:    encodeValues(columns[name]),
				UpdatedAt: updatedAt,
			})
			if err != nil {
				return fmt.Errorf("failed to marshal column %s: %w", name, err)
			}

			if _, _, err := tx.Set(recordID(key, name), string(content), nil); err != nil {
				return fmt.Errorf("failed to store column %s: %w", name, err)
			}
		}
		return nil
	})
}

// Load returns every column stored under key. An unknown key yields an empty set.
func (b *BuntStorage) Load(key string) (core.Columns, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	columns := make(core.Columns)
	pivot, err := json.Marshal(map[string]string{"key": key})
	if err != nil {
		return nil, err
	}

	var decodeErr error
	err = b.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendEqual(KeyIndexName, string(pivot), func(id, value string) bool {
			var record columnRecord
			if err := json.Unmarshal([]byte(value), &record); err != nil {
				decodeErr = fmt.Errorf("failed to unmarshal %s: %w", id, err)
				return false
			}
			if record.Key != key {
				return true
			}

			values, err := decodeValues(record.Values)
			if err != nil {
				decodeErr = fmt.Errorf("%s: %w", id, err)
				return false
			}

			columns[record.Column] = values
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}

	return columns, nil
}

// Keys lists the stored keys in lexical order
func (b *BuntStorage) Keys() ([]string, error) {
	keys := make([]string, 0)

	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend(KeyIndexName, func(id, _ string) bool {
			key, _, found := strings.Cut(id, keySeparator)
			if found {
				keys = append(keys, key)
			}
			return true
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over keys: %w", err)
	}

	keys = lo.Uniq(keys)
	sort.Strings(keys)
	return keys, nil
}

// Close closes the database connection
func (b *BuntStorage) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}
