package client

import (
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"church-site-backend/internal/model"

	log "github.com/sirupsen/logrus"
)

func InitMysqlClient(databaseURL string) *gorm.DB {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal(err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := AutoMigrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	return db
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Donation{},
		&model.PrayerRequest{},
		&model.GalleryItem{},
		&model.Devotion{},
		&model.Resource{},
		&model.Admin{},
	)
}
