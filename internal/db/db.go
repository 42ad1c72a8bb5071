package db

import (
	"log"
	"time"

	"github.com/TutorLinkServices/tutor-scheduler/internal/config"
	"github.com/TutorLinkServices/tutor-scheduler/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
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
		&models.User{},
		&models.TutorProfile{},
		&models.Subject{},
		&models.TimeSlot{},
		&models.Reservation{},
		&models.Review{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Records written before status unification are folded into
	// PENDING once, at startup.
	db.Exec(`
        UPDATE reservations
        SET status = 'PENDING'
        WHERE status = 'AWAITING_TUTOR_ACTION'
    `)

	return db
}
