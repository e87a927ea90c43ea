package websocket

import "time"

// Envelope — это "конверт", в котором мы отправляем наши сообщения.
// Event - имя канала, по которому фронтенд понимает, что делать с Payload.
type Envelope struct {
	Event     string      `json:"event"`
	EventID   string      `json:"eventId"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}
