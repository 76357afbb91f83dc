package db

import (
	"fmt"
	"log"

	"github.com/servenow/servenow-backend/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Service{},
		&models.Booking{},
		&models.Payment{},
		&models.Review{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
