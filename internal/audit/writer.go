package audit

// Writer persists audit events.
//
// Write must validate the event, fill in HashPrev and Hash, and return only
// after the event is durable.
type Writer interface {
	Write(event *Event) error
	Close() error
	// LastHash returns the hash of the last written event, or GenesisHash.
	LastHash() string
}

// NopWriter discards all events. It is used when no audit log is configured.
type NopWriter struct{}

var _ Writer = NopWriter{}

func (NopWriter) Write(*Event) error { return nil }
func (NopWriter) Close() error       { return nil }
func (NopWriter) LastHash() string   { return GenesisHash }
