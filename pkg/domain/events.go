package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventRoleUpdate EventType = "role_update"
	EventTrain      EventType = "train"
	EventRead       EventType = "read"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Method    string    `json:"method"`
}

// RoleEvent reports the outcome of a role update.
type RoleEvent struct {
	EventBase
	Unum     int    `json:"unum"`
	Code     int    `json:"code"`
	RoleName string `json:"role_name"`
	Err      error  `json:"-"`
}

// TrainEvent reports a training run.
type TrainEvent struct {
	EventBase
	Samples  int           `json:"samples"`
	Duration time.Duration `json:"duration"`
	Skipped  bool          `json:"skipped,omitempty"`
	Err      error         `json:"-"`
}

// ReadEvent reports a document read.
type ReadEvent struct {
	EventBase
	Version int   `json:"version"`
	Samples int   `json:"samples"`
	Err     error `json:"-"`
}

// LifecycleHooks defines callbacks for formation observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnRoleUpdate func(*RoleEvent)
	OnTrain      func(*TrainEvent)
	OnRead       func(*ReadEvent)
}
