// This file is used to run database migrations
// How to run:
// go run cmd/migrate/main.go
package main

import (
	"log"
	"strconv"

	"github.com/joho/godotenv"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lenskeep/studio/config"
	"github.com/lenskeep/studio/internal/db"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	port, err := strconv.Atoi(config.GetEnv("DB_PORT", "5432"))
	if err != nil {
		log.Fatalf("Invalid DB_PORT: %v", err)
	}

	// db.New runs AutoMigrate as part of opening the connection
	_, err = db.New(db.Options{
		Host:     config.GetEnv("DB_HOST", ""),
		User:     config.GetEnv("DB_USER", ""),
		Password: config.GetEnv("DB_PASSWORD", ""),
		DBName:   config.GetEnv("DB_NAME", ""),
		Port:     port,
		LogLevel: gormlogger.Info,
	})
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}
