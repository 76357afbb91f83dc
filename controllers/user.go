package controllers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/middleware"
	"github.com/servenow/servenow-backend/models"
	"github.com/servenow/servenow-backend/utils"
)

// GetProfile returns the authenticated user's record.
func GetProfile(c *fiber.Ctx) error {
	var user models.User
	if db.DB.Preload("Roles").Where("id = ? AND is_active = ?", middleware.UserID(c), true).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	return utils.Success(c, fiber.StatusOK, "Profile fetched", user)
}

type UpdateProfileInput struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	PhoneNumber string   `json:"phone_number"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	PostalCode  string   `json:"postal_code"`
	Country     string   `json:"country"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// UpdateProfile applies the editable profile fields.
func UpdateProfile(c *fiber.Ctx) error {
	input := new(UpdateProfileInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var user models.User
	if db.DB.Where("id = ? AND is_active = ?", middleware.UserID(c), true).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.PhoneNumber != "" && input.PhoneNumber != user.PhoneNumber {
		var other models.User
		if db.DB.Where("phone_number = ? AND id <> ? AND is_active = ?", input.PhoneNumber, user.ID, true).First(&other).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "Phone number is already registered")
		}
		user.PhoneNumber = input.PhoneNumber
		user.IsPhoneVerified = false
	}
	if input.Address != "" {
		user.Address = input.Address
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.State != "" {
		user.State = input.State
	}
	if input.PostalCode != "" {
		user.PostalCode = input.PostalCode
	}
	if input.Country != "" {
		user.Country = input.Country
	}
	if input.Latitude != nil {
		user.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		user.Longitude = input.Longitude
	}

	if err := db.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update profile")
	}
	return utils.Success(c, fiber.StatusOK, "Profile updated", user)
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ChangePassword verifies the current password before storing a new hash.
func ChangePassword(c *fiber.Ctx) error {
	input := new(ChangePasswordInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.NewPassword != input.ConfirmPassword {
		return utils.Error(c, fiber.StatusBadRequest, "New password and confirm password do not match")
	}
	if input.NewPassword == input.CurrentPassword {
		return utils.Error(c, fiber.StatusBadRequest, "New password must be different from current password")
	}
	if len(input.NewPassword) < 8 {
		return utils.Error(c, fiber.StatusBadRequest, "Password must be at least 8 characters long")
	}

	var user models.User
	if db.DB.Where("id = ? AND is_active = ?", middleware.UserID(c), true).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.CurrentPassword)); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}
	user.Password = string(hashed)
	if err := db.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to change password")
	}
	return utils.Success(c, fiber.StatusOK, "Password changed successfully", nil)
}

// UploadProfilePicture stores the uploaded image in Cloudinary and saves
// the returned URL on the user record.
func UploadProfilePicture(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Picture file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot read uploaded file")
	}
	defer file.Close()

	userID := middleware.UserID(c)
	url, err := utils.UploadProfileImage(file, fmt.Sprintf("user-%d", userID))
	if err != nil {
		log.Printf("Profile picture upload failed for user %d: %v", userID, err)
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to upload picture")
	}

	if err := db.DB.Model(&models.User{}).Where("id = ?", userID).Update("profile_image_url", url).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to save picture URL")
	}
	return utils.Success(c, fiber.StatusOK, "Profile picture updated", fiber.Map{"profile_image_url": url})
}

// GetAllUsers lists active users, paginated.
func GetAllUsers(c *fiber.Ctx) error {
	page, size := utils.PageParams(c)

	var users []models.User
	var total int64
	db.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&total)
	if err := db.DB.Preload("Roles").Where("is_active = ?", true).
		Order("created_at DESC").Limit(size).Offset(page * size).
		Find(&users).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}
	return utils.Success(c, fiber.StatusOK, "Users fetched", utils.NewPage(users, page, size, total))
}

// SearchUsers matches the term against name and email.
func SearchUsers(c *fiber.Ctx) error {
	term := c.Query("q")
	page, size := utils.PageParams(c)
	like := "%" + term + "%"

	query := db.DB.Model(&models.User{}).Where("is_active = ?", true).
		Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", like, like, like)

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Preload("Roles").Order("created_at DESC").
		Limit(size).Offset(page * size).Find(&users).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to search users")
	}
	return utils.Success(c, fiber.StatusOK, "Users fetched", utils.NewPage(users, page, size, total))
}

// GetUser returns one user by id.
func GetUser(c *fiber.Ctx) error {
	var user models.User
	if db.DB.Preload("Roles").Where("id = ? AND is_active = ?", c.Params("id"), true).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	return utils.Success(c, fiber.StatusOK, "User fetched", user)
}

// DeleteUser soft-deletes: the row stays for historical references.
func DeleteUser(c *fiber.Ctx) error {
	var user models.User
	if db.DB.Where("id = ? AND is_active = ?", c.Params("id"), true).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	user.IsActive = false
	user.Enabled = false
	if err := db.DB.Save(&user).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	return utils.Success(c, fiber.StatusOK, "User deleted", nil)
}

// GetUsersByRole lists active users holding the named role.
func GetUsersByRole(c *fiber.Ctx) error {
	return usersWithRole(c, c.Params("name"))
}

func GetProviders(c *fiber.Ctx) error {
	return usersWithRole(c, models.RoleProvider)
}

func GetCustomers(c *fiber.Ctx) error {
	return usersWithRole(c, models.RoleCustomer)
}

func usersWithRole(c *fiber.Ctx, roleName string) error {
	var users []models.User
	err := db.DB.Preload("Roles").
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Joins("JOIN roles ON roles.id = user_roles.role_id").
		Where("roles.name = ? AND users.is_active = ?", roleName, true).
		Find(&users).Error
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}
	return utils.Success(c, fiber.StatusOK, "Users fetched", users)
}

// CheckEmail reports whether an email address is free for registration.
func CheckEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return utils.Error(c, fiber.StatusBadRequest, "email query parameter is required")
	}
	var count int64
	db.DB.Model(&models.User{}).Where("email = ? AND is_active = ?", email, true).Count(&count)
	return utils.Success(c, fiber.StatusOK, "Email availability checked", fiber.Map{"available": count == 0})
}

// CheckPhone reports whether a phone number is free for registration.
func CheckPhone(c *fiber.Ctx) error {
	phone := c.Query("phoneNumber")
	if phone == "" {
		return utils.Error(c, fiber.StatusBadRequest, "phoneNumber query parameter is required")
	}
	var count int64
	db.DB.Model(&models.User{}).Where("phone_number = ? AND is_active = ?", phone, true).Count(&count)
	return utils.Success(c, fiber.StatusOK, "Phone availability checked", fiber.Map{"available": count == 0})
}

// GetUserStats returns account counts per role for the admin dashboard.
func GetUserStats(c *fiber.Ctx) error {
	var total int64
	db.DB.Model(&models.User{}).Where("is_active = ?", true).Count(&total)

	countRole := func(name string) int64 {
		var n int64
		db.DB.Model(&models.User{}).
			Joins("JOIN user_roles ON user_roles.user_id = users.id").
			Joins("JOIN roles ON roles.id = user_roles.role_id").
			Where("roles.name = ? AND users.is_active = ?", name, true).
			Count(&n)
		return n
	}

	return utils.Success(c, fiber.StatusOK, "User statistics fetched", fiber.Map{
		"total_users":     total,
		"total_customers": countRole(models.RoleCustomer),
		"total_providers": countRole(models.RoleProvider),
		"total_admins":    countRole(models.RoleAdmin),
	})
}

// GetNearbyUsers finds active users within radiusKm of the given point
// using a haversine expression evaluated by the database.
func GetNearbyUsers(c *fiber.Ctx) error {
	latitude, errLat := strconv.ParseFloat(c.Query("latitude"), 64)
	longitude, errLng := strconv.ParseFloat(c.Query("longitude"), 64)
	if errLat != nil || errLng != nil {
		return utils.Error(c, fiber.StatusBadRequest, "latitude and longitude are required")
	}
	radiusKm, err := strconv.ParseFloat(c.Query("radiusKm", "10"), 64)
	if err != nil || radiusKm <= 0 {
		radiusKm = 10
	}

	var users []models.User
	distance := "(6371 * acos(cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude))))"
	if err := db.DB.Preload("Roles").
		Where("is_active = ? AND latitude IS NOT NULL AND longitude IS NOT NULL", true).
		Where(distance+" <= ?", latitude, longitude, latitude, radiusKm).
		Find(&users).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch nearby users")
	}
	return utils.Success(c, fiber.StatusOK, "Nearby users fetched", users)
}

// VerifyEmail marks the user's email as verified.
func VerifyEmail(c *fiber.Ctx) error {
	return setVerificationFlag(c, "is_email_verified", "Email verified")
}

// VerifyPhone marks the user's phone as verified.
func VerifyPhone(c *fiber.Ctx) error {
	return setVerificationFlag(c, "is_phone_verified", "Phone verified")
}

func setVerificationFlag(c *fiber.Ctx, column, message string) error {
	var user models.User
	if db.DB.Where("id = ? AND is_active = ?", c.Params("id"), true).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	if err := db.DB.Model(&user).Update(column, true).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return utils.Success(c, fiber.StatusOK, message, user)
}

// ToggleStatus enables or disables an account. The enabled query param
// is mandatory so an omitted value never disables anyone.
func ToggleStatus(c *fiber.Ctx) error {
	param := c.Query("enabled")
	if param != "true" && param != "false" {
		return utils.Error(c, fiber.StatusBadRequest, "enabled query parameter must be true or false")
	}
	enabled := param == "true"
	var user models.User
	if db.DB.Where("id = ? AND is_active = ?", c.Params("id"), true).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "User not found")
	}
	if err := db.DB.Model(&user).Update("enabled", enabled).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	user.Enabled = enabled
	return utils.Success(c, fiber.StatusOK, "User status updated", user)
}
