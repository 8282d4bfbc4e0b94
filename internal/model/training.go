package model

// TrainingProgram is a block of training content attached to a product.
// OrderIndex controls display order among programs of the same product.
type TrainingProgram struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ProductID   uint   `json:"product_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"type:varchar(128);not null"`
	Description string `json:"description" gorm:"type:text"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`

	Product Product         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Videos  []TrainingVideo `json:"videos" gorm:"foreignKey:ProgramID;constraint:OnDelete:CASCADE"`
}

// TrainingVideo is an externally hosted video inside a training program.
type TrainingVideo struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	ProgramID       uint   `json:"program_id" gorm:"index;not null"`
	Title           string `json:"title" gorm:"type:varchar(128);not null"`
	YoutubeURL      string `json:"youtube_url" gorm:"type:varchar(512);not null"`
	Description     string `json:"description" gorm:"type:text"`
	OrderIndex      int    `json:"order_index" gorm:"default:0"`
	DurationSeconds *int   `json:"duration_seconds"`
}
