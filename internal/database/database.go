package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
)

const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Connect opens the session database. dbType is "postgres" or "sqlite".
func Connect(dbType, dsn string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(dbType) {
	case TypePostgres:
		dialector = postgres.Open(dsn)
	case TypeSQLite, "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("database: unknown db type: %s", dbType)
	}

	level := gormlogger.Silent
	if debug {
		level = gormlogger.Warn
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("database: failed to open %s: %w", dbType, err)
	}

	log.Printf("✅ Connected to %s database", dialector.Name())
	return db, nil
}

// Migrate creates or updates the tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.StoredSession{}); err != nil {
		return fmt.Errorf("database: failed to migrate: %w", err)
	}
	return nil
}
