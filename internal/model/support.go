package model

import "time"

// Support request lifecycle statuses.
const (
	SupportStatusNew        = "new"
	SupportStatusInProgress = "in_progress"
	SupportStatusResolved   = "resolved"
)

// ValidSupportStatus reports whether s is one of the known statuses.
func ValidSupportStatus(s string) bool {
	switch s {
	case SupportStatusNew, SupportStatusInProgress, SupportStatusResolved:
		return true
	}
	return false
}

// SupportRequest is a free-text message from a user to a consultant,
// optionally tied to one of their products.
type SupportRequest struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	ProductID *uint     `json:"product_id,omitempty"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" gorm:"type:varchar(32);default:new"`
	CreatedAt time.Time `json:"created_at"`

	User    User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Product *Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
