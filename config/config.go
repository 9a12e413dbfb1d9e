package config

import (
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		Log.Info("No .env file found, using system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		Log.WithError(err).Fatal("failed to connect to database")
	}

	if err := Migrations(DB); err != nil {
		Log.WithError(err).Fatal("failed to run migrations")
	}

	SeedServiceCenters(DB)
}
