package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCalculate EventType = "calculate"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// CalculationEvent describes one finished calculation.
type CalculationEvent struct {
	EventBase
	Request  Request       `json:"request"`
	Outcome  Outcome       `json:"outcome"`
	Runs     int           `json:"runs"`
	Cached   bool          `json:"cached"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnCalculate func(context.Context, *CalculationEvent)
}
