package models

import "time"

type LockedMonth struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Year      int       `gorm:"not null;uniqueIndex:idx_locked_year_month" json:"year"`
	Month     int       `gorm:"not null;check:month >= 1 AND month <= 12;uniqueIndex:idx_locked_year_month" json:"month"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (LockedMonth) TableName() string {
	return "locked_months"
}

type DayLock struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_day_lock" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_day_lock;index" json:"date"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (DayLock) TableName() string {
	return "day_locks"
}
