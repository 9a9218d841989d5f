package dto

import "time"

// SendMessageRequest entrada para enviar un mensaje desde el inbox.
type SendMessageRequest struct {
	Message  string `json:"message" validate:"required,max=4096"`
	ClientID *int64 `json:"client_id"`
}

// MessageResponse salida de un mensaje.
type MessageResponse struct {
	ID        int64     `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Type      string    `json:"message_type"`
	ClientID  *int64    `json:"client_id"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}
