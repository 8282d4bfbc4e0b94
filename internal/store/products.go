package store

import (
	"errors"

	"trainer-api/internal/model"

	"gorm.io/gorm"
)

// ActivateProduct resolves qrCode to a product and links it to the user.
// Returns ErrNotFound for an unknown code. Re-scanning an already activated
// product returns the product without creating a second link; the composite
// unique index on (user_id, product_id) backstops concurrent duplicate scans.
// The boolean is true when a new activation record was created.
func (s *Store) ActivateProduct(userID uint, qrCode string) (*model.Product, bool, error) {
	var product model.Product
	err := s.db.Where("qr_code = ?", qrCode).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	var link model.UserProduct
	err = s.db.Where("user_id = ? AND product_id = ?", userID, product.ID).First(&link).Error
	if err == nil {
		return &product, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	link = model.UserProduct{UserID: userID, ProductID: product.ID}
	if err := s.db.Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Concurrent scan already activated it
			return &product, false, nil
		}
		return nil, false, err
	}
	return &product, true, nil
}

// ListUserProducts returns the public views of every product the user has
// activated, in activation insertion order.
func (s *Store) ListUserProducts(userID uint) ([]ProductView, error) {
	var links []model.UserProduct
	err := s.db.Preload("Product").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	products := make([]ProductView, 0, len(links))
	for i := range links {
		products = append(products, productView(&links[i].Product))
	}
	return products, nil
}

// HasProductAccess reports whether the user has activated the product.
func (s *Store) HasProductAccess(userID, productID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.UserProduct{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateProduct inserts a new product. Returns ErrDuplicateQRCode when the
// QR code is already assigned to another product.
func (s *Store) CreateProduct(name, qrCode, description, imageURL string) (*model.Product, error) {
	product := model.Product{
		Name:        name,
		QRCode:      qrCode,
		Description: description,
		ImageURL:    imageURL,
	}
	if err := s.db.Create(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateQRCode
		}
		return nil, err
	}
	return &product, nil
}
