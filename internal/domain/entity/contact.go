package entity

import "time"

// ContactMessage mensaje enviado desde el formulario de contacto del sitio.
type ContactMessage struct {
	ID           string
	Name         string
	Email        string
	BusinessName string
	Phone        string
	Message      string
	IPAddress    string
	CreatedAt    time.Time
}
