package configs

import (
	"fmt"

	"laundrypos/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectionDB(cfg *Config) error {
	database, err := OpenDB(cfg.DBDriver, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	db = database
	return nil
}

// OpenDB opens a gorm handle for sqlite or postgres. Duplicate-key errors are
// translated to gorm.ErrDuplicatedKey for both drivers.
func OpenDB(driver, source string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(source)
	case "sqlite", "":
		dialector = sqlite.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if driver != "postgres" {
		// sqlite allows one writer
		sqlDB, err := database.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return database, nil
}

func SetupDatabase() error {
	return Migrate(db)
}

func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(entity.Tables...)
}
