package store

import (
	"time"

	"trainer-api/internal/model"
)

// ProductView is the public shape of a product, without the QR code.
type ProductView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// VideoView is the public shape of a training video.
type VideoView struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	YoutubeURL      string `json:"youtube_url"`
	Description     string `json:"description"`
	OrderIndex      int    `json:"order_index"`
	DurationSeconds *int   `json:"duration_seconds"`
}

// ProgramView is the public shape of a training program with its videos.
type ProgramView struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	OrderIndex  int         `json:"order_index"`
	Videos      []VideoView `json:"videos"`
}

// SupportRequestView is the public shape of a support request.
type SupportRequestView struct {
	ID        uint      `json:"id"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func productView(p *model.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}

func videoView(v *model.TrainingVideo) VideoView {
	return VideoView{
		ID:              v.ID,
		Title:           v.Title,
		YoutubeURL:      v.YoutubeURL,
		Description:     v.Description,
		OrderIndex:      v.OrderIndex,
		DurationSeconds: v.DurationSeconds,
	}
}

func supportRequestView(r *model.SupportRequest) SupportRequestView {
	return SupportRequestView{
		ID:        r.ID,
		Message:   r.Message,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
