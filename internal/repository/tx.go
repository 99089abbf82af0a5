package repository

import (
	"context"

	"gorm.io/gorm"
)

// TxRepos bundles transaction-scoped repositories handed to a unit of work.
type TxRepos struct {
	Vehicles VehicleRepository
	Slots    SlotRepository
	Records  RecordRepository
}

// TxManager runs a function with every repository bound to one database
// transaction. Entry and exit use it so "create vehicle + occupy slot" and
// "create record + free slot + mark exited" commit or roll back as a unit.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a GORM-backed transaction manager.
func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

// WithTransaction executes fn inside one transaction.
func (m *gormTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, TxRepos{
			Vehicles: &vehicleRepository{db: tx},
			Slots:    &slotRepository{db: tx},
			Records:  &recordRepository{db: tx},
		})
	})
}
