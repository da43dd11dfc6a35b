// Package snapshot persists copies of the local mirrors into a SQL database
// for offline reporting.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/beesaferoot/condo-console/internal/model"
)

var ErrNotFound = errors.New("snapshot not found")

// Snapshot is the content of every mirror at one instant.
type Snapshot struct {
	Source     string
	TakenAt    time.Time
	Apartments []model.Apartment
	Residents  []model.Resident
	Accounts   []model.Account
	Employees  []model.Employee
}

// Open connects to postgres when databaseURL is set, otherwise to the sqlite
// file at sqlitePath.
func Open(databaseURL, sqlitePath string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch {
	case databaseURL != "":
		dialector = postgres.Open(databaseURL)
	case sqlitePath != "":
		dialector = sqlite.Open(sqlitePath)
	default:
		return nil, fmt.Errorf("DATABASE_URL or SNAPSHOT_SQLITE_PATH must be set")
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %v", err)
	}
	return db, nil
}

type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore migrates db to the current snapshot schema.
func NewStore(db *gorm.DB) (*Store, error) {
	if _, err := Migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// DB exposes the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Save writes snap in a single transaction and returns its record. A zero
// TakenAt is replaced with the current time.
func (s *Store) Save(ctx context.Context, snap Snapshot) (*Record, error) {
	if snap.TakenAt.IsZero() {
		snap.TakenAt = s.now()
	}
	record := Record{
		ID:         uuid.NewString(),
		Source:     snap.Source,
		TakenAt:    snap.TakenAt.UTC(),
		Apartments: len(snap.Apartments),
		Residents:  len(snap.Residents),
		Accounts:   len(snap.Accounts),
		Employees:  len(snap.Employees),
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to start transaction: %v", tx.Error)
	}
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to save snapshot: %v", err)
	}
	if err := saveRows(tx, record.ID, snap); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %v", err)
	}
	return &record, nil
}

func saveRows(tx *gorm.DB, id string, snap Snapshot) error {
	if len(snap.Apartments) > 0 {
		rows := make([]ApartmentRow, 0, len(snap.Apartments))
		for _, a := range snap.Apartments {
			rows = append(rows, ApartmentRow{
				SnapshotID:  id,
				Number:      a.Key(),
				Occupied:    a.Occupied,
				Rented:      a.Rented,
				ForSale:     a.ForSale,
				ResidentIDs: a.ResidentIDs,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save apartments: %v", err)
		}
	}

	if len(snap.Residents) > 0 {
		rows := make([]ResidentRow, 0, len(snap.Residents))
		for _, r := range snap.Residents {
			apts := make([]string, 0, len(r.ApartmentNumbers))
			for _, n := range r.ApartmentNumbers {
				apts = append(apts, n.String())
			}
			rows = append(rows, ResidentRow{
				SnapshotID:       id,
				ResidentID:       r.ID,
				Name:             r.Name,
				Age:              r.Age,
				ApartmentNumbers: apts,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save residents: %v", err)
		}
	}

	if len(snap.Accounts) > 0 {
		rows := make([]AccountRow, 0, len(snap.Accounts))
		for _, a := range snap.Accounts {
			rows = append(rows, AccountRow{
				SnapshotID:      id,
				AccountID:       a.ID,
				Amount:          a.Amount,
				Pending:         a.Pending,
				ResidentID:      a.ResidentID,
				ApartmentNumber: a.ApartmentNumber.String(),
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save accounts: %v", err)
		}
	}

	if len(snap.Employees) > 0 {
		rows := make([]EmployeeRow, 0, len(snap.Employees))
		for _, e := range snap.Employees {
			rows = append(rows, EmployeeRow{
				SnapshotID: id,
				EmployeeID: e.ID,
				Name:       e.Name,
				Age:        e.Age,
				Role:       e.Role,
				Salary:     e.Salary,
				Schedule:   e.Schedule,
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to save employees: %v", err)
		}
	}
	return nil
}

// History lists saved snapshots, newest first. A limit of zero or less
// returns all of them.
func (s *Store) History(ctx context.Context, limit int) ([]Record, error) {
	q := s.db.WithContext(ctx).Order("taken_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var records []Record
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get snapshot history: %v", err)
	}
	return records, nil
}

// Load reads a saved snapshot back into entity values.
func (s *Store) Load(ctx context.Context, id string) (*Snapshot, error) {
	db := s.db.WithContext(ctx)

	var record Record
	if err := db.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to load snapshot %s: %v", id, err)
	}

	snap := &Snapshot{
		Source:     record.Source,
		TakenAt:    record.TakenAt,
		Apartments: []model.Apartment{},
		Residents:  []model.Resident{},
		Accounts:   []model.Account{},
		Employees:  []model.Employee{},
	}

	var apts []ApartmentRow
	if err := db.Where("snapshot_id = ?", id).Order("id").Find(&apts).Error; err != nil {
		return nil, fmt.Errorf("failed to load apartments: %v", err)
	}
	for _, row := range apts {
		snap.Apartments = append(snap.Apartments, model.Apartment{
			Number:      model.ApartmentNumber(row.Number),
			Occupied:    row.Occupied,
			Rented:      row.Rented,
			ForSale:     row.ForSale,
			ResidentIDs: row.ResidentIDs,
		})
	}

	var residents []ResidentRow
	if err := db.Where("snapshot_id = ?", id).Order("id").Find(&residents).Error; err != nil {
		return nil, fmt.Errorf("failed to load residents: %v", err)
	}
	for _, row := range residents {
		refs := make(model.ApartmentRefs, 0, len(row.ApartmentNumbers))
		for _, n := range row.ApartmentNumbers {
			refs = append(refs, model.ApartmentNumber(n))
		}
		snap.Residents = append(snap.Residents, model.Resident{
			ID:               row.ResidentID,
			Name:             row.Name,
			Age:              row.Age,
			ApartmentNumbers: refs,
		})
	}

	var accounts []AccountRow
	if err := db.Where("snapshot_id = ?", id).Order("id").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to load accounts: %v", err)
	}
	for _, row := range accounts {
		snap.Accounts = append(snap.Accounts, model.Account{
			ID:              row.AccountID,
			Amount:          row.Amount,
			Pending:         row.Pending,
			ResidentID:      row.ResidentID,
			ApartmentNumber: model.ApartmentNumber(row.ApartmentNumber),
		})
	}

	var employees []EmployeeRow
	if err := db.Where("snapshot_id = ?", id).Order("id").Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("failed to load employees: %v", err)
	}
	for _, row := range employees {
		snap.Employees = append(snap.Employees, model.Employee{
			ID:       row.EmployeeID,
			Name:     row.Name,
			Age:      row.Age,
			Role:     row.Role,
			Salary:   row.Salary,
			Schedule: row.Schedule,
		})
	}

	return snap, nil
}
