package events

import "time"

// Event is an analytics event emitted by the wizard
type Event interface {
	ID() string
	Type() string
	SessionID() string
	Data() interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	eventID   string
	eventType string
	sessionID string
	data      interface{}
	timestamp time.Time
}

func (e *BaseEvent) ID() string {
	return e.eventID
}

func (e *BaseEvent) Type() string {
	return e.eventType
}

func (e *BaseEvent) SessionID() string {
	return e.sessionID
}

func (e *BaseEvent) Data() interface{} {
	return e.data
}

func (e *BaseEvent) Timestamp() time.Time {
	return e.timestamp
}

func NewBaseEvent(eventID, eventType, sessionID string, data interface{}) *BaseEvent {
	return NewBaseEventWithTimestamp(eventID, eventType, sessionID, data, time.Now())
}

func NewBaseEventWithTimestamp(eventID, eventType, sessionID string, data interface{}, timestamp time.Time) *BaseEvent {
	return &BaseEvent{
		eventID:   eventID,
		eventType: eventType,
		sessionID: sessionID,
		data:      data,
		timestamp: timestamp,
	}
}
