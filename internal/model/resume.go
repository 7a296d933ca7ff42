package model

import "time"

// Resume is the stored source document. Content caches the extracted text.
type Resume struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    string    `json:"user_id" gorm:"not null;index"`
	FileURL   *string   `json:"file_url,omitempty"`
	Content   *string   `json:"content,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
