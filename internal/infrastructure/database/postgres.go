package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"github.com/tillpoint/pos-api/internal/config"
	"github.com/tillpoint/pos-api/internal/domain/entity"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},

		&entity.Product{},
		&entity.StockLog{},

		&entity.Customer{},
		&entity.LoyaltyTransaction{},

		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Payment{},

		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the default admin and cashier users when
// ADMIN_PASSWORD is configured and the users do not exist yet
func SeedDefaultData(db *gorm.DB) error {
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminPassword == "" {
		return nil
	}

	log.Println("Seeding default users...")

	users := []struct {
		username string
		name     string
		role     enum.UserRole
		password string
	}{
		{"admin", "Administrator", enum.UserRoleAdmin, adminPassword},
		{"cashier", "Cashier", enum.UserRoleCashier, viper.GetString("CASHIER_PASSWORD")},
	}

	for _, u := range users {
		if u.password == "" {
			continue
		}

		var existing entity.User
		if err := db.Where("username = ?", u.username).First(&existing).Error; err == nil {
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", u.username, err)
		}

		user := entity.User{
			Username: u.username,
			Password: string(hashed),
			Name:     u.name,
			Role:     u.role,
			IsActive: true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Warning: failed to create user %s: %v", u.username, err)
		} else {
			log.Printf("Default user created: %s", u.username)
		}
	}

	return nil
}
