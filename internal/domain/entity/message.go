package entity

import "time"

// Direction sentido del mensaje en el inbox.
type Direction string

const (
	DirectionReceived Direction = "received"
	DirectionSent     Direction = "sent"
)

// Message mensaje del inbox de WhatsApp.
type Message struct {
	ID        int64
	Sender    string
	Body      string
	Direction Direction
	ClientID  *int64
	Timestamp time.Time
	Read      bool
}
