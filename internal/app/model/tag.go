package model

import (
	"fmt"
	"regexp"
	"time"
)

var tagColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Tag is a predefined label recipes can be filtered by
// 레시피 필터링용 사전 정의 태그 (예: 아침, 점심, 저녁)
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"name"`
	Color     string    `gorm:"type:varchar(7);uniqueIndex;not null" json:"color"` // HEX (#RRGGBB)
	Slug      string    `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"-"`
}

func (Tag) TableName() string {
	return "tags"
}

// Validate checks the color format before a tag is stored
func (t *Tag) Validate() error {
	if !tagColorPattern.MatchString(t.Color) {
		return fmt.Errorf("tag %q: color %q is not a #RRGGBB hex value", t.Name, t.Color)
	}
	return nil
}

// RecipeTag links a recipe to a tag
// 레시피와 태그의 다대다 관계
type RecipeTag struct {
	RecipeID uint `gorm:"primaryKey;autoIncrement:false;index" json:"recipe_id"`
	TagID    uint `gorm:"primaryKey;autoIncrement:false;index" json:"tag_id"`
	Tag      Tag  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tag,omitempty"`
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
