package store

import (
	"errors"

	"trainer-api/internal/model"

	"gorm.io/gorm"
)

// ListPrograms returns the product's training programs sorted by order index
// ascending, each carrying its videos in the same order.
func (s *Store) ListPrograms(productID uint) ([]ProgramView, error) {
	var programs []model.TrainingProgram
	err := s.db.Preload("Videos", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).
		Where("product_id = ?", productID).
		Order("order_index ASC").
		Find(&programs).Error
	if err != nil {
		return nil, err
	}

	views := make([]ProgramView, 0, len(programs))
	for i := range programs {
		p := &programs[i]
		videos := make([]VideoView, 0, len(p.Videos))
		for j := range p.Videos {
			videos = append(videos, videoView(&p.Videos[j]))
		}
		views = append(views, ProgramView{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			OrderIndex:  p.OrderIndex,
			Videos:      videos,
		})
	}
	return views, nil
}

// ListProgramVideos returns the program's videos sorted by order index ascending.
func (s *Store) ListProgramVideos(programID uint) ([]VideoView, error) {
	var videos []model.TrainingVideo
	err := s.db.Where("program_id = ?", programID).
		Order("order_index ASC").
		Find(&videos).Error
	if err != nil {
		return nil, err
	}

	views := make([]VideoView, 0, len(videos))
	for i := range videos {
		views = append(views, videoView(&videos[i]))
	}
	return views, nil
}

// ProductIDForProgram resolves a program to its owning product, for access
// checks on the videos endpoint. Returns ErrNotFound for an unknown program.
func (s *Store) ProductIDForProgram(programID uint) (uint, error) {
	var program model.TrainingProgram
	err := s.db.First(&program, programID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return program.ProductID, nil
}

// CreateProgram inserts a new training program for a product.
func (s *Store) CreateProgram(productID uint, title, description string, orderIndex int) (*model.TrainingProgram, error) {
	program := model.TrainingProgram{
		ProductID:   productID,
		Title:       title,
		Description: description,
		OrderIndex:  orderIndex,
	}
	if err := s.db.Create(&program).Error; err != nil {
		return nil, err
	}
	return &program, nil
}

// CreateVideo inserts a new training video for a program.
func (s *Store) CreateVideo(programID uint, title, youtubeURL, description string, orderIndex int, durationSeconds *int) (*model.TrainingVideo, error) {
	video := model.TrainingVideo{
		ProgramID:       programID,
		Title:           title,
		YoutubeURL:      youtubeURL,
		Description:     description,
		OrderIndex:      orderIndex,
		DurationSeconds: durationSeconds,
	}
	if err := s.db.Create(&video).Error; err != nil {
		return nil, err
	}
	return &video, nil
}
