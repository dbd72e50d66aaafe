package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/FrankSLB/eneventextract/internal/types"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.EventRecord{},
	)
}

func EnsureEventIndexes(db *gorm.DB) error {
	// Operator reconciliation scans by provenance and by event date.
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_petrarch_event_sourceurl ON petrarch_event(sourceurl);`).Error; err != nil {
		return fmt.Errorf("create idx_petrarch_event_sourceurl: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_petrarch_event_sqldate ON petrarch_event(sqldate);`).Error; err != nil {
		return fmt.Errorf("create idx_petrarch_event_sqldate: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureEventIndexes(s.db); err != nil {
		s.log.Error("Event index migration failed", "error", err)
		return err
	}
	return nil
}
