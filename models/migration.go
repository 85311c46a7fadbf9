package models

import (
	"github.com/tiktrack/tiktrack_backend/config"
)

// MigrateTable runs AutoMigrate for every persisted entity. Order matters
// only for readability; gorm resolves the FKs.
func MigrateTable() {
	db := config.GetDB()
	err := db.AutoMigrate(
		&User{},
		&Owner{},
		&Product{},
		&ProductEquity{},
		&InventoryBatch{},
		&DailyReport{},
		&Sale{},
		&Expense{},
		&OwnerLedger{},
	)
	if err != nil {
		config.LogError(config.GetLogger(), "migration.go", "MigrateTable", "AutoMigrate", nil, err)
		panic(err)
	}
}
