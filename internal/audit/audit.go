package audit

import (
	"fmt"
	"sync"

	"github.com/remiblancher/certinfo/pkg/certinfo"
)

var (
	globalWriter Writer = NopWriter{}
	globalMu     sync.RWMutex
	enabled      bool
)

// Init installs w as the global audit writer. A nil w disables auditing.
func Init(w Writer) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if w == nil {
		globalWriter = NopWriter{}
		enabled = false
		return
	}
	globalWriter = w
	enabled = true
}

// InitFile enables auditing to the JSONL file at path. An empty path
// disables auditing.
func InitFile(path string) error {
	if path == "" {
		Init(nil)
		return nil
	}

	w, err := NewFileWriter(path)
	if err != nil {
		return err
	}
	Init(w)
	return nil
}

// Close closes the global writer and disables auditing.
func Close() error {
	globalMu.Lock()
	defer globalMu.Unlock()

	err := globalWriter.Close()
	globalWriter = NopWriter{}
	enabled = false
	return err
}

// Enabled reports whether audit logging is active.
func Enabled() bool {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return enabled
}

// Log writes event to the global writer. A failure here must fail the
// operation being audited.
func Log(event *Event) error {
	globalMu.RLock()
	w := globalWriter
	globalMu.RUnlock()

	if err := w.Write(event); err != nil {
		return fmt.Errorf("audit log failed: %w", err)
	}
	return nil
}

// LogInspection records the outcome of inspecting host:port. rec is used
// when inspectErr is nil. source names the surface that ran it ("cli", "api").
func LogInspection(source, host string, port int, rec *certinfo.Record, inspectErr error) error {
	if !Enabled() {
		return nil
	}

	obj := Object{Type: "endpoint", Host: host, Port: port}

	if inspectErr != nil {
		event := NewEvent(EventCertInspectFailed, ResultFailure).
			WithObject(obj).
			WithContext(Context{Reason: certinfo.KindOf(inspectErr).String(), Source: source})
		return Log(event)
	}

	days := rec.DaysRemaining
	obj.Serial = rec.Serial
	obj.Subject = rec.Subject
	event := NewEvent(EventCertInspected, ResultSuccess).
		WithObject(obj).
		WithContext(Context{Fingerprint: rec.Fingerprint, DaysRemaining: &days, Source: source})
	return Log(event)
}
