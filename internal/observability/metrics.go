package observability

import (
	"fmt"
	"time"
)

// Metrics summarizes board activity recorded in the event log.
type Metrics struct {
	TasksAdded     int            `json:"tasks_added" yaml:"tasks_added"`
	TasksDeleted   int            `json:"tasks_deleted" yaml:"tasks_deleted"`
	TasksCompleted int            `json:"tasks_completed" yaml:"tasks_completed"`
	TasksReopened  int            `json:"tasks_reopened" yaml:"tasks_reopened"`
	Swaps          int            `json:"swaps" yaml:"swaps"`
	DragsStarted   int            `json:"drags_started" yaml:"drags_started"`
	DragsCancelled int            `json:"drags_cancelled" yaml:"drags_cancelled"`
	DropsIgnored   int            `json:"drops_ignored" yaml:"drops_ignored"`
	IgnoredReasons map[string]int `json:"ignored_reasons,omitempty" yaml:"ignored_reasons,omitempty"`
	Sessions       int            `json:"sessions" yaml:"sessions"`
	EventCount     int            `json:"event_count" yaml:"event_count"`
	OldestEvent    *time.Time     `json:"oldest_event,omitempty" yaml:"oldest_event,omitempty"`
	NewestEvent    *time.Time     `json:"newest_event,omitempty" yaml:"newest_event,omitempty"`
}

// MetricsCalculator derives metrics from the event log.
type MetricsCalculator interface {
	Calculate(since time.Time) (*Metrics, error)
}

// metricsCalculator implements MetricsCalculator by reading from an EventLog.
type metricsCalculator struct {
	eventLog EventLog
}

// NewMetricsCalculator creates a new MetricsCalculator that reads from the given EventLog.
func NewMetricsCalculator(eventLog EventLog) MetricsCalculator {
	return &metricsCalculator{eventLog: eventLog}
}

// Calculate aggregates every event since the given time.
func (mc *metricsCalculator) Calculate(since time.Time) (*Metrics, error) {
	events, err := mc.eventLog.Read(EventFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("reading events for metrics: %w", err)
	}

	m := &Metrics{IgnoredReasons: make(map[string]int)}
	m.EventCount = len(events)
	sessions := make(map[string]bool)

	for i, event := range events {
		if i == 0 {
			t := event.Time
			m.OldestEvent = &t
		}
		t := event.Time
		m.NewestEvent = &t
		if event.Session != "" {
			sessions[event.Session] = true
		}

		switch event.Type {
		case "task.added":
			m.TasksAdded++
		case "task.deleted":
			m.TasksDeleted++
		case "task.moved":
			switch event.Data["to"] {
			case "completed":
				m.TasksCompleted++
			case "available":
				m.TasksReopened++
			}
		case "task.swapped":
			m.Swaps++
		case "drag.started":
			m.DragsStarted++
		case "drag.cancelled":
			m.DragsCancelled++
		case "drop.ignored":
			m.DropsIgnored++
			if reason, ok := event.Data["reason"].(string); ok {
				m.IgnoredReasons[reason]++
			}
		}
	}
	m.Sessions = len(sessions)

	return m, nil
}
