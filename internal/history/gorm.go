package history

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	pkgerrors "github.com/slfireworks/quotation/pkg/errors"
)

// historyRow is a single key/value row holding the serialized history array.
// Keeping the whole array in one payload mirrors the storage-key contract of
// the other stores, so swapping stores never changes history semantics.
type historyRow struct {
	Key       string `gorm:"primaryKey;size:128"`
	Payload   string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (historyRow) TableName() string {
	return "quotation_history"
}

// GormStore persists history under a storage key in a relational database.
// The caller owns the *gorm.DB and its lifecycle.
type GormStore struct {
	db  *gorm.DB
	key string
}

func NewGormStore(db *gorm.DB, key string) (*GormStore, error) {
	if db == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nil database handle")
	}
	if err := db.AutoMigrate(&historyRow{}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "migrating history table")
	}
	return &GormStore{db: db, key: key}, nil
}

func (s *GormStore) Load() ([]Record, error) {
	var row historyRow
	if err := s.db.First(&row, "key = ?", s.key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodePersistence, err, "loading history row")
	}

	var records []Record
	if err := json.Unmarshal([]byte(row.Payload), &records); err != nil {
		return nil, nil
	}
	return records, nil
}

func (s *GormStore) Save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "encoding history")
	}

	row := historyRow{Key: s.key, Payload: string(raw), UpdatedAt: time.Now().UTC()}
	var existing historyRow
	findErr := s.db.First(&existing, "key = ?", s.key).Error
	if errors.Is(findErr, gorm.ErrRecordNotFound) {
		if err := s.db.Create(&row).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "creating history row")
		}
		return nil
	}
	if findErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, findErr, "looking up history row")
	}
	if err := s.db.Save(&row).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodePersistence, err, "updating history row")
	}
	return nil
}
