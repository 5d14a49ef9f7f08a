package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pkaminski/lakiernia/internal/models"
)

// AllModels lists every persisted entity for AutoMigrate and test setup.
var AllModels = []any{
	&models.User{}, &models.Client{}, &models.PaintingVariant{}, &models.ClientPricing{},
	&models.Order{}, &models.OrderItem{}, &models.Worker{}, &models.WorkLog{},
	&models.PaintPurchase{}, &models.MonthlyCost{},
}

// ConnectAndMigrate opens the configured postgres database, retries briefly
// on startup races, then brings the schema up to date. With MIGRATIONS=1 the
// SQL files in ./migrations run via golang-migrate; otherwise AutoMigrate
// covers the dev path. DB_SEED=1 seeds reference data afterwards.
func ConnectAndMigrate() (*gorm.DB, error) {
	dsn := GetNormalizedDSN()
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	var db *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		log.Println("retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)(\S+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	log.Println("[DB] using DSN:", masked)

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		for _, m := range AllModels {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	for _, table := range []string{"users", "clients", "orders", "painting_variants"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}

	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		Seed(db)
	}
	return db, nil
}

// Seed inserts reference data that the workshop expects on a fresh database:
// the variant catalog, the worker roster with default rates, and the admin
// user when ADMIN_EMAIL/ADMIN_PASSWORD are set. Safe to run repeatedly.
func Seed(db *gorm.DB) {
	baseVariants := []models.PaintingVariant{
		{Name: "Lakier mat", DefaultPricePerM2: 100, Sides: 2},
		{Name: "Lakier połysk", DefaultPricePerM2: 120, Sides: 2},
		{Name: "Lakier jednostronny", DefaultPricePerM2: 70, Sides: 1},
	}
	for _, pv := range baseVariants {
		var existing models.PaintingVariant
		if err := db.Where("name = ?", pv.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			db.Create(&pv)
		}
	}

	baseWorkers := []models.Worker{
		{Name: "Kasia", DefaultHourlyRate: 35},
		{Name: "Lukasz", DefaultHourlyRate: 50},
		{Name: "Michal", DefaultHourlyRate: 50},
		{Name: "Fabian", DefaultHourlyRate: 20},
	}
	for _, wk := range baseWorkers {
		var existing models.Worker
		if err := db.Where("name = ?", wk.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			db.Create(&wk)
		}
	}

	email := strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))
	pass := os.Getenv("ADMIN_PASSWORD")
	if email != "" && pass != "" {
		var existing models.User
		if err := db.Where("email = ?", email).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			hash, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
			if err == nil {
				db.Create(&models.User{Email: email, Password: string(hash), Name: "Admin"})
			}
		}
	}
}

// runSQLMigrations executes migrations in ./migrations using the file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
