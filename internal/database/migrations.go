package database

import (
	"fmt"

	"github.com/yonagi/game-library-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds the composite lookup indexes AutoMigrate does not derive
// from model tags. The duplicate-copy guard in the Steam import hits
// (owner_id, game_id) on every entry.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		table   string
		name    string
		columns string
	}{
		{&models.Copy{}, "copies", "idx_copies_owner_game", "owner_id, game_id"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}

// MigrateDatabase runs AutoMigrate plus the index pass.
func MigrateDatabase(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	return nil
}
