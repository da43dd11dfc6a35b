package snapshot

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record describes one saved snapshot.
type Record struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Source     string    `gorm:"not null"`
	TakenAt    time.Time `gorm:"not null;index"`
	Apartments int       `gorm:"not null"`
	Residents  int       `gorm:"not null"`
	Accounts   int       `gorm:"not null"`
	Employees  int       `gorm:"not null"`
}

func (Record) TableName() string { return "snapshots" }

type ApartmentRow struct {
	ID          uint    `gorm:"primaryKey"`
	SnapshotID  string  `gorm:"size:36;not null;index"`
	Number      string  `gorm:"not null"`
	Occupied    bool    `gorm:"not null"`
	Rented      bool    `gorm:"not null"`
	ForSale     bool    `gorm:"not null"`
	ResidentIDs []int64 `gorm:"serializer:json"`
}

func (ApartmentRow) TableName() string { return "snapshot_apartments" }

type ResidentRow struct {
	ID               uint     `gorm:"primaryKey"`
	SnapshotID       string   `gorm:"size:36;not null;index"`
	ResidentID       int64    `gorm:"not null"`
	Name             string   `gorm:"not null"`
	Age              int      `gorm:"not null"`
	ApartmentNumbers []string `gorm:"serializer:json"`
}

func (ResidentRow) TableName() string { return "snapshot_residents" }

type AccountRow struct {
	ID              uint            `gorm:"primaryKey"`
	SnapshotID      string          `gorm:"size:36;not null;index"`
	AccountID       int64           `gorm:"not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Pending         bool            `gorm:"not null"`
	ResidentID      int64           `gorm:"not null"`
	ApartmentNumber string          `gorm:"not null"`
}

func (AccountRow) TableName() string { return "snapshot_accounts" }

type EmployeeRow struct {
	ID         uint            `gorm:"primaryKey"`
	SnapshotID string          `gorm:"size:36;not null;index"`
	EmployeeID int64           `gorm:"not null"`
	Name       string          `gorm:"not null"`
	Age        int             `gorm:"not null"`
	Role       string          `gorm:"not null"`
	Salary     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Schedule   string
}

func (EmployeeRow) TableName() string { return "snapshot_employees" }
