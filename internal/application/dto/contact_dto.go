package dto

import "time"

// ContactRequest entrada de POST /api/contact.
type ContactRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone"`
	Message      string `json:"message"`
}

// ContactMessageResponse mensaje guardado.
type ContactMessageResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	BusinessName string    `json:"businessName,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ContactMessageListResponse listado para administración.
type ContactMessageListResponse struct {
	Items []ContactMessageResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
