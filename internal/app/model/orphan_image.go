package model

import (
	"time"
)

// OrphanImage is a stored image no recipe references anymore
type OrphanImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	URL       string    `gorm:"type:varchar(500);not null" json:"url"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"` // 삭제 시도 횟수
	CreatedAt time.Time `json:"created_at"`
}

func (OrphanImage) TableName() string {
	return "orphan_images"
}
