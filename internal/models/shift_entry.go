package models

import "time"

type ShiftEntry struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_shift_date" json:"user_id"`
	ShiftDate   time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_shift_date;index" json:"shift_date"`
	ShiftAbbrev string    `gorm:"not null" json:"shift_abbrev"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (ShiftEntry) TableName() string {
	return "shift_schedule"
}

func (e *ShiftEntry) IsValid() bool {
	if e.UserID == 0 {
		return false
	}
	if e.ShiftDate.IsZero() {
		return false
	}
	if e.ShiftAbbrev == "" {
		return false
	}
	return true
}
