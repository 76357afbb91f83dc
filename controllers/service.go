package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/middleware"
	"github.com/servenow/servenow-backend/models"
	"github.com/servenow/servenow-backend/utils"
)

// GetAllServices lists active services, paginated.
func GetAllServices(c *fiber.Ctx) error {
	page, size := utils.PageParams(c)

	var total int64
	db.DB.Model(&models.Service{}).Where("is_active = ?", true).Count(&total)

	var services []models.Service
	if err := db.DB.Preload("Provider").Preload("Category").
		Where("is_active = ?", true).
		Order("created_at DESC").Limit(size).Offset(page * size).
		Find(&services).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch services")
	}
	return utils.Success(c, fiber.StatusOK, "Services fetched", utils.NewPage(services, page, size, total))
}

func GetService(c *fiber.Ctx) error {
	var service models.Service
	if db.DB.Preload("Provider").Preload("Category").
		Where("id = ? AND is_active = ?", c.Params("id"), true).First(&service).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Service not found")
	}
	return utils.Success(c, fiber.StatusOK, "Service fetched", service)
}

// GetServiceBySlug resolves a listing by its URL slug.
func GetServiceBySlug(c *fiber.Ctx) error {
	var service models.Service
	if db.DB.Preload("Provider").Preload("Category").
		Where("slug = ? AND is_active = ?", c.Params("slug"), true).First(&service).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Service not found")
	}
	return utils.Success(c, fiber.StatusOK, "Service fetched", service)
}

// GetCategoryServices lists the active services under a category, paginated.
func GetCategoryServices(c *fiber.Ctx) error {
	var category models.Category
	if db.DB.Where("id = ? AND is_active = ?", c.Params("id"), true).First(&category).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Category not found")
	}

	page, size := utils.PageParams(c)

	var total int64
	db.DB.Model(&models.Service{}).Where("category_id = ? AND is_active = ?", category.ID, true).Count(&total)

	var services []models.Service
	if err := db.DB.Preload("Provider").Preload("Category").
		Where("category_id = ? AND is_active = ?", category.ID, true).
		Order("average_rating DESC").Limit(size).Offset(page * size).
		Find(&services).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch services")
	}
	return utils.Success(c, fiber.StatusOK, "Services fetched", utils.NewPage(services, page, size, total))
}

// SearchServices matches the q term against title and description.
func SearchServices(c *fiber.Ctx) error {
	term := c.Query("q")
	page, size := utils.PageParams(c)
	like := "%" + term + "%"

	query := db.DB.Model(&models.Service{}).
		Where("is_active = ? AND is_available = ?", true, true).
		Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)

	var total int64
	query.Count(&total)

	var services []models.Service
	if err := query.Preload("Provider").Preload("Category").
		Order("average_rating DESC").Limit(size).Offset(page * size).
		Find(&services).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to search services")
	}
	return utils.Success(c, fiber.StatusOK, "Services fetched", utils.NewPage(services, page, size, total))
}

// GetFeaturedServices lists available services flagged for the homepage.
func GetFeaturedServices(c *fiber.Ctx) error {
	var services []models.Service
	if err := db.DB.Preload("Provider").Preload("Category").
		Where("is_featured = ? AND is_available = ? AND is_active = ?", true, true, true).
		Order("average_rating DESC").Find(&services).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch featured services")
	}
	return utils.Success(c, fiber.StatusOK, "Featured services fetched", services)
}

// GetProviderServices lists a provider's active services.
func GetProviderServices(c *fiber.Ctx) error {
	var services []models.Service
	if err := db.DB.Preload("Category").
		Where("provider_id = ? AND is_active = ?", c.Params("id"), true).
		Order("created_at DESC").Find(&services).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch services")
	}
	return utils.Success(c, fiber.StatusOK, "Services fetched", services)
}

type ServiceInput struct {
	Title                    string             `json:"title"`
	Description              string             `json:"description"`
	BasePrice                float64            `json:"base_price"`
	PricingType              models.PricingType `json:"pricing_type"`
	PriceUnit                string             `json:"price_unit"`
	EstimatedDurationMinutes int                `json:"estimated_duration_minutes"`
	IsAvailable              *bool              `json:"is_available"`
	IsFeatured               *bool              `json:"is_featured"`
	CategoryID               uint               `json:"category_id"`
}

// CreateService creates a listing owned by the authenticated provider.
func CreateService(c *fiber.Ctx) error {
	input := new(ServiceInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	fields := map[string]string{}
	if input.Title == "" {
		fields["title"] = "Service title is required"
	}
	if input.BasePrice <= 0 {
		fields["base_price"] = "Base price must be greater than 0"
	}
	if input.CategoryID == 0 {
		fields["category_id"] = "Category is required"
	}
	if len(fields) > 0 {
		return utils.ValidationError(c, fields)
	}

	var category models.Category
	if db.DB.Where("id = ? AND is_active = ?", input.CategoryID, true).First(&category).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Category not found")
	}

	service := models.Service{
		Title:                    input.Title,
		Description:              input.Description,
		BasePrice:                input.BasePrice,
		PricingType:              input.PricingType,
		PriceUnit:                input.PriceUnit,
		EstimatedDurationMinutes: input.EstimatedDurationMinutes,
		IsAvailable:              true,
		CategoryID:               input.CategoryID,
		ProviderID:               middleware.UserID(c),
	}
	if input.IsAvailable != nil {
		service.IsAvailable = *input.IsAvailable
	}
	if err := db.DB.Create(&service).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create service")
	}
	return utils.Success(c, fiber.StatusCreated, "Service created", service)
}

// UpdateService edits a listing. Only the owning provider or an admin
// may change it.
func UpdateService(c *fiber.Ctx) error {
	input := new(ServiceInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var service models.Service
	if db.DB.Where("id = ? AND is_active = ?", c.Params("id"), true).First(&service).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Service not found")
	}
	if service.ProviderID != middleware.UserID(c) && !middleware.HasRole(c, models.RoleAdmin) {
		return utils.Error(c, fiber.StatusForbidden, "You can only manage your own services")
	}

	if input.Title != "" {
		service.Title = input.Title
	}
	if input.Description != "" {
		service.Description = input.Description
	}
	if input.BasePrice > 0 {
		service.BasePrice = input.BasePrice
	}
	if input.PricingType != "" {
		service.PricingType = input.PricingType
	}
	if input.PriceUnit != "" {
		service.PriceUnit = input.PriceUnit
	}
	if input.EstimatedDurationMinutes > 0 {
		service.EstimatedDurationMinutes = input.EstimatedDurationMinutes
	}
	if input.CategoryID != 0 && input.CategoryID != service.CategoryID {
		var category models.Category
		if db.DB.Where("id = ? AND is_active = ?", input.CategoryID, true).First(&category).RowsAffected == 0 {
			return utils.Error(c, fiber.StatusNotFound, "Category not found")
		}
		service.CategoryID = input.CategoryID
	}
	if input.IsAvailable != nil {
		service.IsAvailable = *input.IsAvailable
	}
	if input.IsFeatured != nil && middleware.HasRole(c, models.RoleAdmin) {
		service.IsFeatured = *input.IsFeatured
	}

	if err := db.DB.Save(&service).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update service")
	}
	return utils.Success(c, fiber.StatusOK, "Service updated", service)
}

// DeleteService soft-deletes a listing.
func DeleteService(c *fiber.Ctx) error {
	var service models.Service
	if db.DB.Where("id = ? AND is_active = ?", c.Params("id"), true).First(&service).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Service not found")
	}
	if service.ProviderID != middleware.UserID(c) && !middleware.HasRole(c, models.RoleAdmin) {
		return utils.Error(c, fiber.StatusForbidden, "You can only manage your own services")
	}
	service.IsActive = false
	service.IsAvailable = false
	if err := db.DB.Save(&service).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete service")
	}
	return utils.Success(c, fiber.StatusOK, "Service deleted", nil)
}
