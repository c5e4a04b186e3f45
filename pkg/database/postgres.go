package database

import (
	"log"

	"github.com/catarena-s/explore-with-me/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Location{},
		&models.Event{},
		&models.Request{},
		&models.Friendship{},
		&models.EndpointHit{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// One live friendship row per direction. Rejected rows stay behind and
	// must not block a new request, so the index is partial.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_friendship_follower_friend
		ON friendships (follower_id, friend_id)
		WHERE state <> 'REJECTED'
	`)

	return db
}
