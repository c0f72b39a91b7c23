package myevents

import (
	"encoding/json"
	"fmt"
	"time"
)

type EventEnvelope struct {
	UID           string
	CreatedAt     time.Time
	Topic         string
	AggregateUID  string
	EventTypeName string
	EventPayload  string
}

func (e EventEnvelope) String() string {
	return e.Topic + "." + e.EventTypeName + "." + e.AggregateUID
}

// DecodePayload unmarshals the json payload into the typed event
func (e EventEnvelope) DecodePayload(event any) error {
	err := json.Unmarshal([]byte(e.EventPayload), event)
	if err != nil {
		return fmt.Errorf("error parsing payload of %s: %s", e.String(), err)
	}
	return nil
}

type Event interface {
	GetEventTypeName() string
	GetAggregateName() string
}
