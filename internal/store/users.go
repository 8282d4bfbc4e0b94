package store

import (
	"errors"

	"trainer-api/internal/model"

	"gorm.io/gorm"
)

// UpsertUser looks a user up by Telegram ID, creating the row on first
// contact. A supplied non-empty first name or username that differs from the
// stored value overwrites it. A concurrent insert losing the race on the
// tg_id unique index falls back to re-fetching the winner's row.
func (s *Store) UpsertUser(tgID int64, firstName, username string) (*model.User, error) {
	var user model.User
	err := s.db.Where("tg_id = ?", tgID).First(&user).Error
	if err == nil {
		changed := false
		if firstName != "" && user.FirstName != firstName {
			user.FirstName = firstName
			changed = true
		}
		if username != "" && user.Username != username {
			user.Username = username
			changed = true
		}
		if changed {
			if err := s.db.Save(&user).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = model.User{TgID: tgID, FirstName: firstName, Username: username}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race to a concurrent upsert for the same tg_id
			var existing model.User
			if err := s.db.Where("tg_id = ?", tgID).First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}
	return &user, nil
}
