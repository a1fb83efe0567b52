package models

import "time"

// Wish-free request statuses. Acceptance is canonicalized on write to the
// "Akzeptiert von ..." values; WunschfreiLegacyApproved only survives in old
// databases and is still treated as accepted on read.
const (
	WunschfreiPending          = "Ausstehend"
	WunschfreiAcceptedByAdmin  = "Akzeptiert von Admin"
	WunschfreiAcceptedByUser   = "Akzeptiert von Benutzer"
	WunschfreiRejectedByAdmin  = "Abgelehnt von Admin"
	WunschfreiRejectedByUser   = "Abgelehnt von Benutzer"
	WunschfreiLegacyApproved   = "Genehmigt"
)

// Origin of a wish-free request.
const (
	RequestedByUser  = "user"
	RequestedByAdmin = "admin"
)

// RequestedShiftWF is the default requested code for a plain wish-free day.
// RequestedShiftSplit is the sentinel for a day-or-night split request.
const (
	RequestedShiftWF    = "WF"
	RequestedShiftSplit = "T/N"
)

type WunschfreiRequest struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	UserID          uint      `gorm:"not null;uniqueIndex:idx_user_request_date" json:"user_id"`
	RequestDate     time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_request_date;index" json:"request_date"`
	RequestedShift  string    `gorm:"not null;default:'WF'" json:"requested_shift"`
	Status          string    `gorm:"type:varchar(30);not null;default:'Ausstehend';index" json:"status"`
	RequestedBy     string    `gorm:"type:varchar(10);not null;default:'user'" json:"requested_by"`
	Notified        bool      `gorm:"not null;default:false" json:"notified"`
	RejectionReason string    `json:"rejection_reason"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (WunschfreiRequest) TableName() string {
	return "wunschfrei_requests"
}

func (w *WunschfreiRequest) IsPending() bool {
	return w.Status == WunschfreiPending
}

func (w *WunschfreiRequest) IsAccepted() bool {
	switch w.Status {
	case WunschfreiAcceptedByAdmin, WunschfreiAcceptedByUser, WunschfreiLegacyApproved:
		return true
	}
	return false
}

func (w *WunschfreiRequest) IsRejected() bool {
	return w.Status == WunschfreiRejectedByAdmin || w.Status == WunschfreiRejectedByUser
}

// CanTransition enforces the per-origin state machine: user-origin requests
// are decided by an admin, admin-origin requests are decided by the user.
func (w *WunschfreiRequest) CanTransition(to string) bool {
	if w.Status != WunschfreiPending {
		return false
	}
	if w.RequestedBy == RequestedByAdmin {
		return to == WunschfreiAcceptedByUser || to == WunschfreiRejectedByUser
	}
	return to == WunschfreiAcceptedByAdmin || to == WunschfreiRejectedByAdmin
}

// MaterializedAbbrev is the schedule code written when the request is
// accepted: X for a plain wish-free, otherwise the requested code itself.
func (w *WunschfreiRequest) MaterializedAbbrev() string {
	if w.RequestedShift == RequestedShiftWF {
		return "X"
	}
	return w.RequestedShift
}
