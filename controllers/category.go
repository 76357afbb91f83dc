package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/servenow/servenow-backend/db"
	"github.com/servenow/servenow-backend/models"
	"github.com/servenow/servenow-backend/utils"
)

// GetAllCategories lists active categories ordered for display.
func GetAllCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := db.DB.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}
	return utils.Success(c, fiber.StatusOK, "Categories fetched", categories)
}

// GetTopLevelCategories lists categories without a parent.
func GetTopLevelCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := db.DB.Where("parent_category_id IS NULL AND is_active = ?", true).
		Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}
	return utils.Success(c, fiber.StatusOK, "Top-level categories fetched", categories)
}

// GetSubcategories lists the direct children of a category.
func GetSubcategories(c *fiber.Ctx) error {
	var parent models.Category
	if db.DB.Where("id = ? AND is_active = ?", c.Params("id"), true).First(&parent).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Category not found")
	}
	var categories []models.Category
	if err := db.DB.Where("parent_category_id = ? AND is_active = ?", parent.ID, true).
		Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to fetch subcategories")
	}
	return utils.Success(c, fiber.StatusOK, "Subcategories fetched", categories)
}

func GetCategory(c *fiber.Ctx) error {
	var category models.Category
	if db.DB.Preload("SubCategories", "is_active = ?", true).
		Where("id = ? AND is_active = ?", c.Params("id"), true).First(&category).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Category not found")
	}
	return utils.Success(c, fiber.StatusOK, "Category fetched", category)
}

func GetCategoryBySlug(c *fiber.Ctx) error {
	var category models.Category
	if db.DB.Preload("SubCategories", "is_active = ?", true).
		Where("slug = ? AND is_active = ?", c.Params("slug"), true).First(&category).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Category not found")
	}
	return utils.Success(c, fiber.StatusOK, "Category fetched", category)
}

type CategoryInput struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	IconURL          string `json:"icon_url"`
	ImageURL         string `json:"image_url"`
	Slug             string `json:"slug"`
	SortOrder        *int   `json:"sort_order"`
	IsFeatured       *bool  `json:"is_featured"`
	ParentCategoryID *uint  `json:"parent_category_id"`
}

// CreateCategory creates a category, optionally under a parent.
func CreateCategory(c *fiber.Ctx) error {
	input := new(CategoryInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}
	if input.Name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "Category name is required")
	}

	if input.ParentCategoryID != nil {
		var parent models.Category
		if db.DB.Where("id = ? AND is_active = ?", *input.ParentCategoryID, true).First(&parent).RowsAffected == 0 {
			return utils.Error(c, fiber.StatusNotFound, "Parent category not found")
		}
	}

	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}
	var existing models.Category
	if db.DB.Where("slug = ?", slug).First(&existing).RowsAffected > 0 {
		return utils.Error(c, fiber.StatusConflict, "Category with this slug already exists")
	}

	category := models.Category{
		Name:             input.Name,
		Description:      input.Description,
		IconURL:          input.IconURL,
		ImageURL:         input.ImageURL,
		Slug:             slug,
		ParentCategoryID: input.ParentCategoryID,
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsFeatured != nil {
		category.IsFeatured = *input.IsFeatured
	}
	if err := db.DB.Create(&category).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to create category")
	}
	return utils.Success(c, fiber.StatusCreated, "Category created", category)
}

// UpdateCategory edits a category. Re-parenting is rejected when the new
// parent chain would loop back to the category itself.
func UpdateCategory(c *fiber.Ctx) error {
	input := new(CategoryInput)
	if err := c.BodyParser(input); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "Cannot parse JSON")
	}

	var category models.Category
	if db.DB.Where("id = ? AND is_active = ?", c.Params("id"), true).First(&category).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Category not found")
	}

	if input.ParentCategoryID != nil {
		if *input.ParentCategoryID == category.ID {
			return utils.Error(c, fiber.StatusBadRequest, "Category cannot be its own parent")
		}
		cycle, err := category.WouldCycle(db.DB, *input.ParentCategoryID)
		if err != nil {
			return utils.Error(c, fiber.StatusNotFound, "Parent category not found")
		}
		if cycle {
			return utils.Error(c, fiber.StatusBadRequest, "Category hierarchy cannot contain cycles")
		}
		category.ParentCategoryID = input.ParentCategoryID
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if input.IconURL != "" {
		category.IconURL = input.IconURL
	}
	if input.ImageURL != "" {
		category.ImageURL = input.ImageURL
	}
	if input.Slug != "" && input.Slug != category.Slug {
		var other models.Category
		if db.DB.Where("slug = ? AND id <> ?", input.Slug, category.ID).First(&other).RowsAffected > 0 {
			return utils.Error(c, fiber.StatusConflict, "Category with this slug already exists")
		}
		category.Slug = input.Slug
	}
	if input.SortOrder != nil {
		category.SortOrder = *input.SortOrder
	}
	if input.IsFeatured != nil {
		category.IsFeatured = *input.IsFeatured
	}

	if err := db.DB.Save(&category).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to update category")
	}
	return utils.Success(c, fiber.StatusOK, "Category updated", category)
}

// DeleteCategory soft-deletes a category.
func DeleteCategory(c *fiber.Ctx) error {
	var category models.Category
	if db.DB.Where("id = ? AND is_active = ?", c.Params("id"), true).First(&category).RowsAffected == 0 {
		return utils.Error(c, fiber.StatusNotFound, "Category not found")
	}
	category.IsActive = false
	if err := db.DB.Save(&category).Error; err != nil {
		return utils.Error(c, fiber.StatusInternalServerError, "Failed to delete category")
	}
	return utils.Success(c, fiber.StatusOK, "Category deleted", nil)
}
