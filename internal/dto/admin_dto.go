package dto

import "time"

// ResumeCreateDTO registers a stored resume document. UserID defaults to the
// caller; only admins may name another user.
type ResumeCreateDTO struct {
	UserID  string  `json:"user_id"`
	FileURL *string `json:"file_url" binding:"omitempty,url"`
	Content *string `json:"content"`
}

type ResumeResponseDTO struct {
	ID            uint      `json:"id"`
	UserID        string    `json:"user_id"`
	FileURL       *string   `json:"file_url,omitempty"`
	ContentLength int       `json:"content_length"`
	CreatedAt     time.Time `json:"created_at"`
}
