package controllers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/middleware"
	"github.com/servenow/servenow-backend/models"
	"github.com/servenow/servenow-backend/redis"
	"github.com/servenow/servenow-backend/utils"
)

type RegisterInput struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Email           string   `json:"email"`
	Password        string   `json:"password"`
	ConfirmPassword string   `json:"confirm_password"`
	PhoneNumber     string   `json:"phone_number"`
	Address         string   `json:"address"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	PostalCode      string   `json:"postal_code"`
	Country         string   `json:"country"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	UserType        string   `json:"user_type"`
}

type AuthTokens struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         *models.User `json:"user"`
}

func issueTokens(user *models.User) (*AuthTokens, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, user.RoleNames())
	if err != nil {
		return nil, err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    utils.AccessTokenExpirySeconds(),
		User:         user,
	}, nil
}

// Register creates a new customer or provider account. No partial user is
// persisted when any precondition fails.
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	fields := map[string]string{}
	if input.FirstName == "" {
		fields["first_name"] = "First name is required"
	}
	if input.LastName == "" {
		fields["last_name"] = "Last name is required"
	}
	if input.Email == "" {
		fields["email"] = "Email is required"
	}
	if len(input.Password) < 8 {
		fields["password"] = "Password must be at least 8 characters long"
	}
	if len(fields) > 0 {
		return utils.ValidationError(c, fields)
	}

	if input.Password != input.ConfirmPassword {
		return utils.Error(c, fiber.StatusBadRequest, "Password and confirm password do not match")
	}

	userType := strings.ToUpper(input.UserType)
	if userType == "" {
		userType = models.RoleCustomer
	}
	if userType != models.RoleCustomer && userType != models.RoleProvider {
		return utils.Error(c, fiber.StatusBadRequest, "User type must be either CUSTOMER or PROVIDER")
	}

	var existing models.User
	if db.DB.Where("email = ? AND is_active = ?", input.Email, true).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusBadRequest, "Email address is already registered")
	}
	if input.PhoneNumber != "" {
		if db.DB.Where("phone_number = ? AND is_active = ?", input.PhoneNumber, true).First(&models.User{}).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusBadRequest, "Phone number is already registered")
		}
	}

	var role models.Role
	if err := db.DB.Where("name = ?", userType).First(&role).Error; err != nil {
		log.Printf("Error finding role %s: %v", userType, err)
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to assign role")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := models.User{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Password:    string(hashed),
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		City:        input.City,
		State:       input.State,
		PostalCode:  input.PostalCode,
		Country:     input.Country,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Enabled:     true,
		Roles:       []models.Role{role},
	}
	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	tokens, err := issueTokens(&user)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}
	return utils.Success(c, fiber.StatusCreated, "User registered successfully", tokens)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates by email and password and issues both tokens.
func Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var user models.User
	if db.DB.Preload("Roles").Where("email = ? AND is_active = ?", input.Email, true).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.Enabled {
		return utils.Error(c, fiber.StatusUnauthorized, "Account is disabled")
	}

	tokens, err := issueTokens(&user)
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}
	return utils.Success(c, fiber.StatusOK, "Login successful", tokens)
}

// RefreshToken exchanges a refresh token, presented as the bearer
// credential, for a fresh access token.
func RefreshToken(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return utils.Error(c, fiber.StatusUnauthorized, "Refresh token is required")
	}

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	if utils.TokenType(claims) != utils.TokenTypeRefresh {
		return utils.Error(c, fiber.StatusUnauthorized, "Token is not a refresh token")
	}

	var user models.User
	if db.DB.Preload("Roles").Where("email = ? AND is_active = ?", utils.ExtractSubject(claims), true).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusUnauthorized, "User not found")
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, user.RoleNames())
	if err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to generate token")
	}
	return utils.Success(c, fiber.StatusOK, "Token refreshed", AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: tokenString,
		ExpiresIn:    utils.AccessTokenExpirySeconds(),
		User:         &user,
	})
}

// ValidateToken confirms the presented bearer token and returns its user.
func ValidateToken(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return utils.Error(c, fiber.StatusUnauthorized, "Token is required")
	}

	claims, err := utils.ParseToken(tokenString)
	if err != nil {
		return utils.Error(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	var user models.User
	if db.DB.Preload("Roles").Where("email = ? AND is_active = ?", utils.ExtractSubject(claims), true).First(&user).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusUnauthorized, "User not found")
	}
	if !utils.ValidateForUser(tokenString, user.Email) {
		return utils.Error(c, fiber.StatusUnauthorized, "Token validation failed")
	}
	return utils.Success(c, fiber.StatusOK, "Token is valid", user)
}

// Logout blacklists the presented access token until it expires. JWTs are
// stateless, so without Redis this is a no-op acknowledgement.
func Logout(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString != "" {
		if claims, err := utils.ParseToken(tokenString); err == nil {
			if exp, ok := claims["exp"].(float64); ok {
				ttl := time.Until(time.Unix(int64(exp), 0))
				if err := redis.RevokeToken(tokenString, ttl); err != nil {
					log.Printf("Failed to revoke token on logout: %v", err)
				}
			}
		}
	}
	if email := middleware.Email(c); email != "" {
		log.Printf("User logged out: %s", email)
	}
	return utils.Success(c, fiber.StatusOK, "Successfully logged out", nil)
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
