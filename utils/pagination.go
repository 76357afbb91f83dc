package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Page wraps a slice of results with 0-based page metadata.
type Page struct {
	Content       interface{} `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"total_elements"`
	TotalPages    int         `json:"total_pages"`
}

// PageParams reads page/size query params, clamping size to [1,100].
func PageParams(c *fiber.Ctx) (page, size int) {
	page, _ = strconv.Atoi(c.Query("page", "0"))
	size, _ = strconv.Atoi(c.Query("size", "10"))
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return page, size
}

func NewPage(content interface{}, page, size int, total int64) Page {
	totalPages := int((total + int64(size) - 1) / int64(size))
	return Page{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
