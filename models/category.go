package models

import (
	"gorm.io/gorm"

	"github.com/servenow/servenow-backend/utils"
)

type Category struct {
	Base
	Name             string     `json:"name" gorm:"not null"`
	Description      string     `json:"description"`
	IconURL          string     `json:"icon_url"`
	ImageURL         string     `json:"image_url"`
	Slug             string     `json:"slug" gorm:"unique"`
	SortOrder        int        `json:"sort_order" gorm:"default:0"`
	IsFeatured       bool       `json:"is_featured" gorm:"default:false"`
	ParentCategoryID *uint      `json:"parent_category_id"`
	ParentCategory   *Category  `json:"parent_category,omitempty" gorm:"foreignKey:ParentCategoryID"`
	SubCategories    []Category `json:"sub_categories,omitempty" gorm:"foreignKey:ParentCategoryID"`
	Services         []Service  `json:"services,omitempty" gorm:"foreignKey:CategoryID"`
}

func (c *Category) IsTopLevel() bool {
	return c.ParentCategoryID == nil
}

func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = utils.Slugify(c.Name)
	}
	return nil
}

// WouldCycle reports whether assigning parentID to this category closes a
// loop in the parent chain. The hierarchy is two levels in practice but
// nothing in the schema stops deeper nesting, so walk until the root.
func (c *Category) WouldCycle(tx *gorm.DB, parentID uint) (bool, error) {
	current := parentID
	for current != 0 {
		if current == c.ID {
			return true, nil
		}
		var parent Category
		if err := tx.Select("id", "parent_category_id").First(&parent, current).Error; err != nil {
			return false, err
		}
		if parent.ParentCategoryID == nil {
			return false, nil
		}
		current = *parent.ParentCategoryID
	}
	return false, nil
}
