package handlers

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/internal/db"
	"github.com/pkaminski/lakiernia/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := d.AutoMigrate(db.AllModels...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}

// seedWorkshopFixtures creates the minimal client/variant/order trio most
// handler tests need.
func seedWorkshopFixtures(t *testing.T, d *gorm.DB) (models.Client, models.PaintingVariant, models.Order) {
	t.Helper()
	client := models.Client{Name: "Meble Nowak", Type: models.ClientCompany, AccessCode: "1234"}
	if err := d.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	variant := models.PaintingVariant{Name: "Lakier mat", DefaultPricePerM2: 100, Sides: 2}
	if err := d.Create(&variant).Error; err != nil {
		t.Fatalf("variant: %v", err)
	}
	order := models.Order{Number: 1, ClientID: client.ID, Status: models.StatusNew}
	if err := d.Create(&order).Error; err != nil {
		t.Fatalf("order: %v", err)
	}
	return client, variant, order
}
