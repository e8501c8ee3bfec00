package model

import (
	"time"
)

// AnnotationKind selects one of the per-user recipe sets
type AnnotationKind string

const (
	AnnotationFavorite AnnotationKind = "favorite"
	AnnotationCart     AnnotationKind = "cart"
)

// TableName returns the table backing the annotation set
func (k AnnotationKind) TableName() string {
	if k == AnnotationCart {
		return CartItem{}.TableName()
	}
	return Favorite{}.TableName()
}

func (k AnnotationKind) IsValid() bool {
	return k == AnnotationFavorite || k == AnnotationCart
}

// Favorite marks a recipe as favorited by a user
type Favorite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_favorite_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// CartItem puts a recipe into a user's shopping cart
// 장바구니 (쇼핑 리스트 집계 대상)
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_cart_user_recipe;index" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
