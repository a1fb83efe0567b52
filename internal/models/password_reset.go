package models

import "time"

type PasswordResetRequest struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Token     string    `gorm:"not null" json:"-"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (PasswordResetRequest) TableName() string {
	return "password_reset_requests"
}
