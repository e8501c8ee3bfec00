package model

import (
	"time"
)

type Recipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(254);not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CookTime    int       `gorm:"not null;check:chk_recipes_cook_time,cook_time >= 1" json:"cook_time"` // 조리 시간 (분)
	Image       string    `gorm:"type:varchar(500)" json:"image"`                                       // 저장된 이미지 URL
	AuthorID    *uint     `gorm:"index" json:"-"`                                                       // 작성자 삭제 시 NULL
	CreatedAt   time.Time `gorm:"index" json:"-"`
	UpdatedAt   time.Time `json:"-"`

	Author          *User            `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"author,omitempty"`
	IngredientLines []IngredientLine `gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	RecipeTags      []RecipeTag      `gorm:"foreignKey:RecipeID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	// Requester-relative flags filled by EXISTS sub-selects, never stored
	IsFavorited      bool `gorm:"->;-:migration" json:"is_favorited"`
	IsInShoppingCart bool `gorm:"->;-:migration" json:"is_in_shopping_cart"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// IngredientLine is the quantity of one ingredient in one recipe
// 레시피별 재료 수량 (레시피당 재료는 한 번만)
type IngredientLine struct {
	ID           uint `gorm:"primarykey" json:"-"`
	RecipeID     uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"-"`
	IngredientID uint `gorm:"not null;uniqueIndex:idx_recipe_ingredient;index" json:"id"`
	Quantity     int  `gorm:"not null;check:chk_ingredient_lines_quantity,quantity >= 1" json:"quantity"`

	Ingredient Ingredient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (IngredientLine) TableName() string {
	return "ingredient_lines"
}
