package models

import "time"

// Vacation request statuses as persisted in the status column.
const (
	VacationPending   = "Ausstehend"
	VacationApproved  = "Genehmigt"
	VacationCancelled = "Storniert"
	VacationRejected  = "Abgelehnt"
)

type VacationRequest struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	StartDate    time.Time `gorm:"type:date;not null;index" json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null;index" json:"end_date"`
	Status       string    `gorm:"type:varchar(20);not null;default:'Ausstehend';index" json:"status"`
	RequestDate  time.Time `gorm:"autoCreateTime" json:"request_date"`
	Archived     bool      `gorm:"not null;default:false" json:"archived"`
	UserNotified bool      `gorm:"not null;default:false" json:"user_notified"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (VacationRequest) TableName() string {
	return "vacation_requests"
}

// CanTransition reports whether the request may move to the given status.
// Pending requests may be approved, cancelled or rejected; approved requests
// may only be cancelled; Abgelehnt is terminal.
func (v *VacationRequest) CanTransition(to string) bool {
	switch v.Status {
	case VacationPending:
		return to == VacationApproved || to == VacationCancelled || to == VacationRejected
	case VacationApproved:
		return to == VacationCancelled
	default:
		return false
	}
}

// Covers reports whether the inclusive request range contains the date.
func (v *VacationRequest) Covers(date time.Time) bool {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(v.StartDate.Year(), v.StartDate.Month(), v.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(v.EndDate.Year(), v.EndDate.Month(), v.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(start) && !d.After(end)
}

func (v *VacationRequest) IsValid() bool {
	if v.UserID == 0 {
		return false
	}
	if v.StartDate.IsZero() || v.EndDate.IsZero() {
		return false
	}
	if v.EndDate.Before(v.StartDate) {
		return false
	}
	return true
}
