package store

import (
	"errors"

	"trainer-api/internal/model"

	"gorm.io/gorm"
)

// CreateSupportRequest inserts a new support request with status "new".
// Repeated identical submissions each create a row; there is no deduplication.
func (s *Store) CreateSupportRequest(userID uint, message string, productID *uint) (*model.SupportRequest, error) {
	request := model.SupportRequest{
		UserID:    userID,
		ProductID: productID,
		Message:   message,
		Status:    model.SupportStatusNew,
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListSupportRequests returns the user's support requests, most recent first.
func (s *Store) ListSupportRequests(userID uint) ([]SupportRequestView, error) {
	var requests []model.SupportRequest
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}

	views := make([]SupportRequestView, 0, len(requests))
	for i := range requests {
		views = append(views, supportRequestView(&requests[i]))
	}
	return views, nil
}

// UpdateSupportRequestStatus moves a support request to the given status.
// Returns ErrInvalidStatus for a status outside the known set and ErrNotFound
// for an unknown request id.
func (s *Store) UpdateSupportRequestStatus(id uint, status string) (*model.SupportRequest, error) {
	if !model.ValidSupportStatus(status) {
		return nil, ErrInvalidStatus
	}

	var request model.SupportRequest
	err := s.db.First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	request.Status = status
	if err := s.db.Save(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}
