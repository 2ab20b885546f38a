package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mowhoob/internal/models"
)

// slotRecord is the single-row key/blob table backing GORMSlotStore.
type slotRecord struct {
	Key  string `gorm:"primaryKey;type:varchar(100)"`
	Data []byte
}

func (slotRecord) TableName() string {
	return "slots"
}

// GORMSlotStore keeps the creator slot in a relational database (SQLite or
// PostgreSQL) as one key/blob row. The database is a transport for the blob,
// not a queryable schema: the whole list is rewritten on every Save.
type GORMSlotStore struct {
	db  *gorm.DB
	key string
}

// NewGORMSlotStore creates the store and migrates the slots table.
func NewGORMSlotStore(db *gorm.DB, key string) (*GORMSlotStore, error) {
	if key == "" {
		key = DefaultSlotKey
	}
	if err := db.AutoMigrate(&slotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate slots table: %w", err)
	}
	return &GORMSlotStore{db: db, key: key}, nil
}

// Load reads and decodes the slot row.
func (s *GORMSlotStore) Load() ([]models.Creator, error) {
	var rec slotRecord
	if err := s.db.First(&rec, "key = ?", s.key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", s.key, err)
	}
	return decodeSlot(rec.Data)
}

// Save overwrites the slot row with the full list.
func (s *GORMSlotStore) Save(creators []models.Creator) error {
	data, err := encodeSlot(creators)
	if err != nil {
		return err
	}
	rec := slotRecord{Key: s.key, Data: data}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}
	return nil
}
