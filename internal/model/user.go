package model

import "time"

// User represents an end user identified by their Telegram ID. Rows are
// created lazily on first contact and never deleted.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TgID      int64     `json:"tg_id" gorm:"uniqueIndex;not null"`
	FirstName string    `json:"first_name" gorm:"type:varchar(64)"`
	Username  string    `json:"username" gorm:"type:varchar(64)"`
	CreatedAt time.Time `json:"created_at"`
}
