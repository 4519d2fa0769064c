package kafka

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Event is the JSON envelope carried by every message.
type Event struct {
	EventID       string            `json:"event_id"`
	EventType     string            `json:"event_type"`
	AggregateID   string            `json:"aggregate_id"`
	AggregateType string            `json:"aggregate_type"`
	Version       int               `json:"version"`
	Timestamp     time.Time         `json:"timestamp"`
	Source        string            `json:"source"`
	CorrelationID string            `json:"correlation_id,omitempty"`
	Data          json.RawMessage   `json:"data,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// ErrInvalidEvent is returned by Validate for envelopes missing required fields.
var ErrInvalidEvent = errors.New("invalid event")

// NewEvent creates an event with a generated id and the current UTC time.
// A nil data payload is omitted.
func NewEvent(eventType, aggregateID, aggregateType, source string, data any) (*Event, error) {
	e := &Event{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		AggregateID:   aggregateID,
		AggregateType: aggregateType,
		Version:       1,
		Timestamp:     time.Now().UTC(),
		Source:        source,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		e.Data = raw
	}
	return e, nil
}

// WithCorrelationID sets the correlation ID on the event.
func (e *Event) WithCorrelationID(id string) *Event {
	e.CorrelationID = id
	return e
}

// WithMetadata adds a key-value pair to the event metadata.
func (e *Event) WithMetadata(key, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// Validate checks the fields consumers rely on.
func (e *Event) Validate() error {
	if e.EventType == "" {
		return errors.Join(ErrInvalidEvent, errors.New("event_type is required"))
	}
	if e.AggregateType == "" {
		return errors.Join(ErrInvalidEvent, errors.New("aggregate_type is required"))
	}
	return nil
}

// Marshal serializes the event to JSON bytes.
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// UnmarshalEvent decodes and validates an envelope.
func UnmarshalEvent(data []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	return &event, nil
}

// UnmarshalData decodes the payload into target.
func (e *Event) UnmarshalData(target any) error {
	if len(e.Data) == 0 {
		return errors.Join(ErrInvalidEvent, errors.New("event has no data"))
	}
	return json.Unmarshal(e.Data, target)
}
