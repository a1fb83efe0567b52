package models

type ShiftType struct {
	ID        uint    `gorm:"primarykey" json:"id"`
	Abbrev    string  `gorm:"uniqueIndex;not null" json:"abbrev"`
	Name      string  `json:"name"`
	Color     string  `gorm:"default:'#FFFFFF'" json:"color"`
	Hours     float64 `gorm:"not null;default:0" json:"hours"`
	StartTime string  `json:"start_time"` // HH:MM, empty when the shift carries no times
	EndTime   string  `json:"end_time"`   // HH:MM; end <= start means the shift crosses midnight
}

func (ShiftType) TableName() string {
	return "shift_types"
}

// HasTimes reports whether the shift type carries a start and end time and
// can therefore participate in interval checks.
func (st *ShiftType) HasTimes() bool {
	return st.StartTime != "" && st.EndTime != ""
}
