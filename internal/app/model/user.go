package model

import (
	"time"
)

type UserRole string // 사용자 권한 타입

const (
	RoleUser  UserRole = "user"  // 일반 사용자 권한
	RoleAdmin UserRole = "admin" // 관리자 권한
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                   // 사용자 ID
	Email        string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`    // 이메일
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"` // 사용자명 (^[\w.@+-]+$)
	FirstName    string    `gorm:"type:varchar(150);not null" json:"first_name"`           // 이름
	LastName     string    `gorm:"type:varchar(150);not null" json:"last_name"`            // 성
	PasswordHash string    `gorm:"not null" json:"-"`                                      // 비밀번호 해시
	Role         UserRole  `gorm:"type:varchar(20);default:'user'" json:"-"`               // 권한
	IsSuperuser  bool      `gorm:"not null;default:false" json:"-"`                        // 슈퍼유저 여부
	CreatedAt    time.Time `json:"-"`                                                      // 생성 시각
	UpdatedAt    time.Time `json:"-"`                                                      // 수정 시각
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may modify any recipe
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}
