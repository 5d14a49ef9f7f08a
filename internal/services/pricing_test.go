package services

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/internal/models"
)

func setupPricingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.PaintingVariant{}, &models.ClientPricing{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedPricingFixtures(t *testing.T, db *gorm.DB) (models.Client, models.PaintingVariant) {
	t.Helper()
	client := models.Client{Name: "Meble Nowak", Type: models.ClientCompany}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("client: %v", err)
	}
	variant := models.PaintingVariant{Name: "Lakier mat", DefaultPricePerM2: 100, Sides: 2}
	if err := db.Create(&variant).Error; err != nil {
		t.Fatalf("variant: %v", err)
	}
	return client, variant
}

func TestResolveFallsBackToVariantDefault(t *testing.T) {
	db := setupPricingTestDB(t)
	client, variant := seedPricingFixtures(t, db)
	svc := NewPricingService(db)

	price, err := svc.Resolve(&client.ID, variant.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if price != 100 {
		t.Fatalf("expected default 100 got %v", price)
	}

	// No override context at all still resolves the catalog price.
	price, err = svc.Resolve(nil, variant.ID)
	if err != nil {
		t.Fatalf("resolve nil client: %v", err)
	}
	if price != 100 {
		t.Fatalf("expected default 100 got %v", price)
	}
}

func TestResolveUnknownVariantIsZero(t *testing.T) {
	db := setupPricingTestDB(t)
	client, _ := seedPricingFixtures(t, db)
	svc := NewPricingService(db)

	price, err := svc.Resolve(&client.ID, 9999)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if price != 0 {
		t.Fatalf("unknown variant should price at 0, got %v", price)
	}
}

func TestOverrideWinsAndRevertsAfterDelete(t *testing.T) {
	db := setupPricingTestDB(t)
	client, variant := seedPricingFixtures(t, db)
	svc := NewPricingService(db)

	row, err := svc.Upsert(client.ID, variant.ID, 150)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	price, err := svc.Resolve(&client.ID, variant.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if price != 150 {
		t.Fatalf("expected override 150 got %v", price)
	}

	if err := svc.Delete(row.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	price, err = svc.Resolve(&client.ID, variant.ID)
	if err != nil {
		t.Fatalf("resolve after delete: %v", err)
	}
	if price != 100 {
		t.Fatalf("expected revert to default 100 got %v", price)
	}
}

func TestUpsertKeepsSingleRowPerPair(t *testing.T) {
	db := setupPricingTestDB(t)
	client, variant := seedPricingFixtures(t, db)
	svc := NewPricingService(db)

	if _, err := svc.Upsert(client.ID, variant.ID, 150); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := svc.Upsert(client.ID, variant.ID, 150); err != nil {
		t.Fatalf("repeat upsert: %v", err)
	}
	if _, err := svc.Upsert(client.ID, variant.ID, 175); err != nil {
		t.Fatalf("price change upsert: %v", err)
	}

	var count int64
	db.Model(&models.ClientPricing{}).
		Where("client_id = ? AND variant_id = ?", client.ID, variant.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one override row, got %d", count)
	}
	price, _ := svc.Resolve(&client.ID, variant.ID)
	if price != 175 {
		t.Fatalf("expected latest price 175 got %v", price)
	}
}

func TestUpsertRejectsNonPositivePrice(t *testing.T) {
	db := setupPricingTestDB(t)
	client, variant := seedPricingFixtures(t, db)
	svc := NewPricingService(db)

	for _, bad := range []float64{0, -10} {
		if _, err := svc.Upsert(client.ID, variant.ID, bad); !errors.Is(err, ErrInvalidPrice) {
			t.Fatalf("price %v: expected ErrInvalidPrice got %v", bad, err)
		}
	}
	var count int64
	db.Model(&models.ClientPricing{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected upserts must not store rows, found %d", count)
	}
}
