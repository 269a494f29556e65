package amqp

import (
	"encoding/json"
	"time"
)

// ReportMessage carries one computed report snapshot from the API server to
// the persistence worker. The payload is the report's JSON body, stored
// verbatim by the worker.
type ReportMessage struct {
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewReportMessage creates a snapshot message for a report name and body.
func NewReportMessage(name string, payload json.RawMessage) *ReportMessage {
	return &ReportMessage{
		Name:      name,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportMessageFromJSON creates a message from JSON bytes
func ReportMessageFromJSON(data []byte) (*ReportMessage, error) {
	var msg ReportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
