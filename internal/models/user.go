package models

import "time"

type Role string

const (
	RoleUser  string = "user"
	RoleAdmin string = "admin"
)

// NoDog is the sentinel stored in Diensthund for handlers without a dog.
const NoDog = "Kein Hund"

type User struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	Vorname         string     `gorm:"not null" json:"vorname"`
	Name            string     `gorm:"not null;index" json:"name"`
	EntryDate       *time.Time `gorm:"type:date" json:"entry_date"`
	UrlaubGesamt    int        `gorm:"not null;default:0" json:"urlaub_gesamt"`
	UrlaubRest      int        `gorm:"not null;default:0" json:"urlaub_rest"`
	IsApproved      bool       `gorm:"not null;default:false;index" json:"is_approved"`
	IsArchived      bool       `gorm:"not null;default:false;index" json:"is_archived"`
	ArchivedDate    *time.Time `gorm:"type:date" json:"archived_date"`
	ActivationDate  *time.Time `gorm:"type:date" json:"activation_date"`
	Diensthund      string     `gorm:"default:'Kein Hund'" json:"diensthund"`
	LastAusbildung  *time.Time `gorm:"type:date" json:"last_ausbildung"`
	LastSchiessen   *time.Time `gorm:"type:date" json:"last_schiessen"`
	PasswordHash    string     `json:"-"`
	PasswordChanged bool       `gorm:"not null;default:false" json:"password_changed"`
	Role            string     `gorm:"default:'user'" json:"role"`
	CreatedAt       time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) SetRole(role Role) {
	u.Role = string(role)
}

func (u *User) FullName() string {
	if u.Vorname == "" {
		return u.Name
	}
	return u.Vorname + " " + u.Name
}

// HasDog reports whether the user has an assigned service dog.
func (u *User) HasDog() bool {
	return u.Diensthund != "" && u.Diensthund != NoDog
}

// ActiveInMonth reports whether the user belongs on the roster of the month
// spanning [monthStart, monthEnd]. Archived users stay visible as long as
// their archival date lies after the month start; users with a future
// activation date only appear once the month reaches it.
func (u *User) ActiveInMonth(monthStart, monthEnd time.Time) bool {
	if !u.IsApproved {
		return false
	}
	if u.IsArchived {
		if u.ArchivedDate == nil || !u.ArchivedDate.After(monthStart) {
			return false
		}
	}
	if u.ActivationDate != nil && u.ActivationDate.After(monthEnd) {
		return false
	}
	return true
}

// TenureYears returns whole years of service at the reference date, with
// day-of-year correction (an anniversary not yet reached does not count).
func (u *User) TenureYears(at time.Time) int {
	if u.EntryDate == nil {
		return 0
	}
	entry := *u.EntryDate
	years := at.Year() - entry.Year()
	anniversary := time.Date(at.Year(), entry.Month(), entry.Day(), 0, 0, 0, 0, time.UTC)
	if at.Before(anniversary) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
