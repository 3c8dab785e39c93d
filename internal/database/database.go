package database

import (
	"fmt"
	"log"

	"github.com/yukihira/project-management-api/internal/config"
	"github.com/yukihira/project-management-api/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the database selected by DB_DRIVER. When no DSN is
// configured the server falls back to a local SQLite file so development
// works without a running database server.
func Connect(cfg *config.Config) error {
	dialector := resolveDialector(cfg)

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established")
	return nil
}

func resolveDialector(cfg *config.Config) gorm.Dialector {
	if cfg.DatabaseDSN == "" {
		log.Printf("DATABASE_DSN not set, using SQLite at %s", cfg.SQLitePath)
		return sqlite.Open(cfg.SQLitePath)
	}

	switch cfg.DBDriver {
	case "mysql":
		return mysql.Open(cfg.DatabaseDSN)
	case "sqlite":
		return sqlite.Open(cfg.DatabaseDSN)
	default:
		return postgres.Open(cfg.DatabaseDSN)
	}
}

func Migrate() error {
	log.Println("Running database migrations...")
	err := DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.Comment{},
		&models.UserStory{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
