package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"neotrack/internal/core"
)

// EventKind names what happened to a transaction.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventDeleted EventKind = "deleted"
)

// LedgerEvent is published after every successful ledger mutation. It
// carries the whole transaction so consumers never need to read the ledger.
type LedgerEvent struct {
	Kind        EventKind         `json:"kind"`
	ID          int64             `json:"id"`
	Transaction *core.Transaction `json:"transaction,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// NewLedgerEvent creates an event for t.
func NewLedgerEvent(kind EventKind, t core.Transaction, at time.Time) *LedgerEvent {
	return &LedgerEvent{
		Kind:        kind,
		ID:          t.ID,
		Transaction: &t,
		Timestamp:   at,
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerEventFromJSON decodes and sanity-checks a message body.
func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var msg LedgerEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	switch msg.Kind {
	case EventCreated:
		if msg.Transaction == nil {
			return nil, fmt.Errorf("created event %d has no transaction", msg.ID)
		}
	case EventDeleted:
	default:
		return nil, fmt.Errorf("unknown event kind %q", msg.Kind)
	}
	if msg.ID <= 0 {
		return nil, fmt.Errorf("event has invalid id %d", msg.ID)
	}
	return &msg, nil
}
