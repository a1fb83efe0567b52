package models

import "time"

type ActivityLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Action    string    `gorm:"not null;index" json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_log"
}

type AdminNotification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Message   string    `gorm:"not null" json:"message"`
	Sent      bool      `gorm:"not null;default:false;index" json:"sent"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AdminNotification) TableName() string {
	return "admin_notifications"
}
