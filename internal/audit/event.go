// Package audit records certificate inspections in a tamper-evident log.
//
// Events are written as JSON lines. Each line carries the hash of the
// previous line, so deleting, reordering or editing an entry breaks the
// chain and is reported by VerifyChain.
//
// If audit logging is enabled and an event cannot be written, the
// inspection that produced it fails.
package audit

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// EventType represents the category of audit event.
type EventType string

const (
	EventCertInspected     EventType = "CERT_INSPECTED"
	EventCertInspectFailed EventType = "CERT_INSPECT_FAILED"
)

// Result represents the outcome of an inspection.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Actor identifies who triggered the inspection.
type Actor struct {
	Type string `json:"type"` // "user" or "service"
	ID   string `json:"id"`
	Host string `json:"host,omitempty"`
}

// Object is the endpoint and, on success, the certificate it presented.
type Object struct {
	Type    string `json:"type"` // always "endpoint"
	Host    string `json:"host"`
	Port    int    `json:"port"`
	Serial  string `json:"serial,omitempty"`
	Subject string `json:"subject,omitempty"`
}

// Context holds inspection details.
type Context struct {
	Fingerprint   string `json:"fingerprint,omitempty"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
	Reason        string `json:"reason,omitempty"` // error kind on failure
	Source        string `json:"source,omitempty"` // "cli" or "api"
}

// Event is a single audit log entry.
type Event struct {
	EventType EventType `json:"event_type"`
	Timestamp string    `json:"timestamp"` // RFC3339 UTC
	Actor     Actor     `json:"actor"`
	Object    Object    `json:"object"`
	Context   Context   `json:"context"`
	Result    Result    `json:"result"`
	HashPrev  string    `json:"hash_prev"`
	Hash      string    `json:"hash"`
}

// NewEvent creates an event stamped with the current time and local user.
func NewEvent(eventType EventType, result Result) *Event {
	hostname, _ := os.Hostname()
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}
	if username == "" {
		username = "unknown"
	}

	return &Event{
		EventType: eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Actor:     Actor{Type: "user", ID: username, Host: hostname},
		Result:    result,
	}
}

func (e *Event) WithObject(obj Object) *Event {
	e.Object = obj
	return e
}

func (e *Event) WithContext(ctx Context) *Event {
	e.Context = ctx
	return e
}

// Validate checks that required fields are present.
func (e *Event) Validate() error {
	switch {
	case e.EventType == "":
		return errors.New("event_type is required")
	case e.Timestamp == "":
		return errors.New("timestamp is required")
	case e.Actor.Type == "" || e.Actor.ID == "":
		return errors.New("actor type and id are required")
	case e.Object.Host == "":
		return errors.New("object host is required")
	case e.Result == "":
		return errors.New("result is required")
	}
	return nil
}

// CanonicalJSON returns the bytes that are hashed: every field except Hash.
func (e *Event) CanonicalJSON() ([]byte, error) {
	type hashed struct {
		EventType EventType `json:"event_type"`
		Timestamp string    `json:"timestamp"`
		Actor     Actor     `json:"actor"`
		Object    Object    `json:"object"`
		Context   Context   `json:"context"`
		Result    Result    `json:"result"`
		HashPrev  string    `json:"hash_prev"`
	}
	return json.Marshal(hashed{
		EventType: e.EventType,
		Timestamp: e.Timestamp,
		Actor:     e.Actor,
		Object:    e.Object,
		Context:   e.Context,
		Result:    e.Result,
		HashPrev:  e.HashPrev,
	})
}
