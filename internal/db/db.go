package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-platform/internal/config"
	"github.com/BruksfildServices01/barber-platform/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Barbershop{},
		&models.User{},
		&models.Barber{},
		&models.Client{},
		&models.Service{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Authoritative double-booking guard. A read-then-insert probe cannot
	// serialize two inserts into an empty slot, so the database enforces
	// at most one scheduled appointment per (barber, date, time).
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_scheduled_slot
		 ON appointments (barber_id, date, time) WHERE status = 'scheduled'`,
	).Error; err != nil {
		log.Fatalf("failed to create slot index: %v", err)
	}

	return db
}
