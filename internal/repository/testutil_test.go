package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mobipos/mobipos/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.InventoryItem{},
		&models.InvoiceSequence{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}
