package metadata

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// --- Generic Accessors ---

// GetValue retrieves a value for a given key from the metadata table.
func GetValue(db *gorm.DB, key string) (string, error) {
	var meta Metadata
	err := db.Where("key = ?", key).First(&meta).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// If the key doesn't exist, return an empty string, which is a valid default.
			return "", nil
		}
		return "", err
	}
	return meta.Value, nil
}

// SetValue creates or updates a value for a given key.
func SetValue(db *gorm.DB, key, value string) error {
	// Use GORM's OnConflict clause for an efficient and atomic "upsert" operation.
	meta := Metadata{
		Key:   key,
		Value: value,
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&meta).Error
}

// --- Specific Helpers ---

// GetCatalogSeedVersion returns the last seeded badge catalog version, or "" if never seeded.
func GetCatalogSeedVersion(db *gorm.DB) (string, error) {
	return GetValue(db, CatalogSeedVersionKey)
}

// SetCatalogSeedVersion records the badge catalog version that was just seeded.
func SetCatalogSeedVersion(db *gorm.DB, version string) error {
	return SetValue(db, CatalogSeedVersionKey, version)
}

// MarkCacheRebuilt records the current time as the last successful cache rebuild.
func MarkCacheRebuilt(db *gorm.DB) error {
	return SetValue(db, LastCacheRebuildAtKey, time.Now().UTC().Format(time.RFC3339))
}
