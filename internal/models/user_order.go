package models

import "time"

type UserOrder struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	IsVisible bool      `gorm:"not null;default:true" json:"is_visible"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserOrder) TableName() string {
	return "user_order"
}
