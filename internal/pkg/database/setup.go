package database

import (
	"fmt"
	"log"
	"time"

	"github.com/cleanstreetapp/cleanstreet/app/models"
	"github.com/cleanstreetapp/cleanstreet/internal/pkg/env"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

const maxRetries = 5
const retryDelay = 5 * time.Second

func SetupDatabase() {
	var err error
	// "user:pass@tcp(127.0.0.1:3306)/dbname?charset=utf8mb4&parseTime=True&loc=Local"
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		env.GetEnv("DB_USER", ""),
		env.GetEnv("DB_PASSWORD", ""),
		env.GetEnv("DB_HOST", "127.0.0.1"),
		env.GetEnv("DB_PORT", "3306"),
		env.GetEnv("DB_NAME", ""),
	)

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                      dsn,
			DefaultStringSize:        256,  // default size for string fields
			DisableDatetimePrecision: true, // datetime precision not supported before MySQL 5.6
			DontSupportRenameIndex:   true, // drop & create when rename index, not supported before MySQL 5.7, MariaDB
			DontSupportRenameColumn:  true, // `change` when rename column, not supported before MySQL 8, MariaDB
		}), &gorm.Config{TranslateError: true})
		if err == nil {
			migrate(DB)
			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}

// SetupTestDatabase swaps the global connection for an in-memory SQLite
// database. Only test code calls this.
func SetupTestDatabase() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}
	migrate(db)
	DB = db
	return db
}

func migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Complaint{},
		&models.Vote{},
		&models.Comment{},
	)
	if err != nil {
		panic(err)
	}
}

// GetDB returns the global database connection
func GetDB() *gorm.DB {
	return DB
}
