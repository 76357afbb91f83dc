package controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/models"
	"github.com/servenow/servenow-backend/utils"
)

// Search filters the service catalogue by term, category, price range,
// minimum rating and provider location, all at the database level.
func Search(c *fiber.Ctx) error {
	page, size := utils.PageParams(c)

	query := db.DB.Model(&models.Service{}).
		Where("services.is_active = ? AND services.is_available = ?", true, true)

	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("LOWER(services.title) LIKE LOWER(?) OR LOWER(services.description) LIKE LOWER(?)", like, like)
	}
	if categoryID := c.Query("categoryId"); categoryID != "" {
		query = query.Where("services.category_id = ?", categoryID)
	}
	if minPrice, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		query = query.Where("services.base_price >= ?", minPrice)
	}
	if maxPrice, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		query = query.Where("services.base_price <= ?", maxPrice)
	}
	if minRating, err := strconv.ParseFloat(c.Query("minRating"), 64); err == nil {
		query = query.Where("services.average_rating >= ?", minRating)
	}
	if location := c.Query("location"); location != "" {
		like := "%" + location + "%"
		query = query.Joins("JOIN users ON users.id = services.provider_id").
			Where("LOWER(users.city) LIKE LOWER(?) OR LOWER(users.state) LIKE LOWER(?)", like, like)
	}

	var total int64
	query.Count(&total)

	var services []models.Service
	if err := query.Preload("Provider").Preload("Category").
		Order("services.average_rating DESC, services.total_reviews DESC").
		Limit(size).Offset(page * size).Find(&services).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Search failed")
	}
	return utils.Success(c, fiber.StatusOK, "Search results", utils.NewPage(services, page, size, total))
}

// SearchFeatured returns the featured services for the homepage.
func SearchFeatured(c *fiber.Ctx) error {
	return GetFeaturedServices(c)
}

// SearchPopular lists services ordered by rating and review volume.
func SearchPopular(c *fiber.Ctx) error {
	page, size := utils.PageParams(c)

	query := db.DB.Model(&models.Service{}).
		Where("is_active = ? AND is_available = ?", true, true)

	var total int64
	query.Count(&total)

	var services []models.Service
	if err := query.Preload("Provider").Preload("Category").
		Order("average_rating DESC, total_reviews DESC").
		Limit(size).Offset(page * size).Find(&services).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch popular services")
	}
	return utils.Success(c, fiber.StatusOK, "Popular services fetched", utils.NewPage(services, page, size, total))
}
