package database

import (
	"context"
	"fmt"
	"time"

	"github.com/otcheredev/remedium-hms/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string
}

// DSN renders the libpq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Models lists every persisted type in dependency order.
func Models() []any {
	return []any{
		&models.Ward{},
		&models.Room{},
		&models.Patient{},
		&models.Staff{},
		&models.Appointment{},
		&models.Invoice{},
		&models.InventoryItem{},
		&models.LabTest{},
		&models.Prescription{},
		&models.Surgery{},
		&models.PatientCare{},
		&models.Report{},
		&models.ExternalIntegration{},
		&models.Permission{},
		&models.Group{},
		&models.User{},
		&models.AuditLog{},
	}
}

func gormLogger(level string) logger.Interface {
	switch level {
	case "silent":
		return logger.Default.LogMode(logger.Silent)
	case "error":
		return logger.Default.LogMode(logger.Error)
	case "warn":
		return logger.Default.LogMode(logger.Warn)
	default:
		return logger.Default.LogMode(logger.Info)
	}
}

// Connect opens a pooled connection.
func Connect(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormLogger(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	log.Info().Str("host", cfg.Host).Str("db", cfg.DBName).Msg("Database connected")
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Ping checks the connection is usable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
