package db

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/servenow/servenow-backend/models"
)

// Seed creates the default roles, the bootstrap admin account and the
// starter categories. Safe to run on every startup.
func Seed() {
	seedRoles()
	seedAdminUser()
	seedCategories()
	log.Println("✅ Seed data verified")
}

func seedRoles() {
	roles := []models.Role{
		{Name: models.RoleCustomer, Description: "Customer who books services"},
		{Name: models.RoleProvider, Description: "Service provider who offers and fulfils bookings"},
		{Name: models.RoleAdmin, Description: "Administrator with full access"},
		{Name: models.RoleModerator, Description: "Moderator who reviews users and content"},
	}

	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			if err := DB.Create(&role).Error; err != nil {
				log.Printf("Failed to seed role %s: %v", role.Name, err)
			}
		}
	}
}

func seedAdminUser() {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@servenow.com"
	}

	var existing models.User
	if DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
		return
	}

	var adminRole models.Role
	if err := DB.Where("name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		log.Printf("Cannot seed admin user, ADMIN role missing: %v", err)
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		FirstName:       "System",
		LastName:        "Administrator",
		Email:           email,
		Password:        string(hashed),
		PhoneNumber:     "+15550001",
		IsEmailVerified: true,
		IsPhoneVerified: true,
		Enabled:         true,
		Roles:           []models.Role{adminRole},
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin user: %v", err)
		return
	}
	log.Printf("Default admin user created with ID: %d", admin.ID)
}

func seedCategories() {
	var count int64
	DB.Model(&models.Category{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []models.Category{
		{Name: "Home Cleaning", Description: "House and apartment cleaning services", SortOrder: 1, IsFeatured: true},
		{Name: "Plumbing", Description: "Pipe, tap and drainage work", SortOrder: 2, IsFeatured: true},
		{Name: "Electrical", Description: "Wiring, fittings and repairs", SortOrder: 3},
		{Name: "Appliance Repair", Description: "Repair of household appliances", SortOrder: 4},
		{Name: "Beauty & Wellness", Description: "Salon and wellness services at home", SortOrder: 5},
	}
	for i := range categories {
		if err := DB.Create(&categories[i]).Error; err != nil {
			log.Printf("Failed to seed category %s: %v", categories[i].Name, err)
		}
	}
}
