package database

import (
	"fmt"
	"log"
	"time"

	"github.com/gdg-garage/tourism-api/internal/config"
	"github.com/gdg-garage/tourism-api/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DatabaseDriver, dsn(cfg))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if cfg.DatabaseDriver == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatalf("Failed to get database instance: %v", err)
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	log.Printf("Connected to %s database", cfg.DatabaseDriver)
	return db
}

// Open returns a gorm handle for driver ("sqlite" or "postgres").
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return gorm.Open(dialector, &gorm.Config{TranslateError: true})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(store.Models()...)
}

func dsn(cfg *config.Config) string {
	if cfg.DatabaseDriver == "postgres" {
		return cfg.DatabaseURL
	}
	return cfg.DatabasePath
}
