package model

import "time"

// Product represents a purchasable product unlocked via its QR code.
// The QR code is immutable after creation and identifies exactly one product.
type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(128);not null"`
	Description string    `json:"description" gorm:"type:text"`
	QRCode      string    `json:"qr_code" gorm:"column:qr_code;type:varchar(64);uniqueIndex;not null"`
	ImageURL    string    `json:"image_url" gorm:"type:varchar(512)"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserProduct links a user to a product they activated by scanning its QR
// code. The composite unique index makes duplicate activations a constraint
// violation rather than a second row.
type UserProduct struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex:idx_user_products_user_product;not null"`
	ProductID   uint      `json:"product_id" gorm:"uniqueIndex:idx_user_products_user_product;not null"`
	ActivatedAt time.Time `json:"activated_at" gorm:"autoCreateTime"`

	User    User    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Product Product `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
