package snapshot

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Migration is one versioned change to the snapshot schema.
type Migration struct {
	Version string
	Name    string
	Up      func(*gorm.DB) error
}

// MigrationRecord marks a migration as applied.
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string { return "snapshot_schema_versions" }

// Migrations are applied in order.
var Migrations = []*Migration{
	{
		Version: "20261001090000",
		Name:    "create_snapshot_tables",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&Record{}, &ApartmentRow{}, &ResidentRow{}, &AccountRow{}, &EmployeeRow{})
		},
	},
	{
		Version: "20261012143000",
		Name:    "index_pending_accounts",
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE INDEX IF NOT EXISTS idx_snapshot_accounts_pending ON snapshot_accounts (snapshot_id, pending)").Error
		},
	},
}

// Migrate applies every pending migration, each in its own transaction.
// It returns the migrations it applied.
func Migrate(db *gorm.DB) ([]*Migration, error) {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return nil, fmt.Errorf("failed to create version table: %v", err)
	}

	var records []MigrationRecord
	if err := db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %v", err)
	}
	applied := make(map[string]bool, len(records))
	for _, record := range records {
		applied[record.Version] = true
	}

	var done []*Migration
	for _, m := range Migrations {
		if applied[m.Version] {
			continue
		}

		tx := db.Begin()
		if tx.Error != nil {
			return done, fmt.Errorf("failed to start transaction: %v", tx.Error)
		}
		if err := m.Up(tx); err != nil {
			tx.Rollback()
			return done, fmt.Errorf("failed to apply migration %s: %v", m.Name, err)
		}
		record := MigrationRecord{Version: m.Version, Name: m.Name, AppliedAt: time.Now()}
		if err := tx.Create(&record).Error; err != nil {
			tx.Rollback()
			return done, fmt.Errorf("failed to record migration %s: %v", m.Name, err)
		}
		if err := tx.Commit().Error; err != nil {
			return done, fmt.Errorf("failed to commit transaction: %v", err)
		}
		done = append(done, m)
	}
	return done, nil
}

// Applied lists the applied migrations, newest first.
func Applied(db *gorm.DB) ([]MigrationRecord, error) {
	var records []MigrationRecord
	if err := db.Order("applied_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get migration history: %v", err)
	}
	return records, nil
}
