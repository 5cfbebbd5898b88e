// Package db opens the relational store and keeps its schema up to date
package db

import (
	"bitwise74/company-api/internal/model"
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database configured under db.* and migrates all tables
func New() (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch viper.GetString("db.type") {
	case "postgres":
		dsn := viper.GetString("db.dsn")
		if dsn == "" {
			return nil, errors.New("db.dsn is required for postgres")
		}

		dialector = postgres.Open(dsn)
	case "sqlite", "":
		// SQLite ignores foreign keys unless asked per connection
		dialector = sqlite.Open(viper.GetString("db.path") + "?_foreign_keys=on")
	default:
		return nil, fmt.Errorf("unsupported database type %q", viper.GetString("db.type"))
	}

	return Open(dialector)
}

// Open connects through an already built dialector. Tests use it to get
// an isolated in-memory database.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Company{}, model.Review{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	zap.L().Debug("Database ready", zap.String("dialect", db.Dialector.Name()))
	return db, nil
}
