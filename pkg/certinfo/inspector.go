package certinfo

import (
	"context"
	"errors"
)

// Inspector runs the fetch-then-parse pipeline for one endpoint.
// It holds no mutable state and is safe for concurrent use.
type Inspector struct {
	Connector *Connector
	Extractor *Extractor
}

// NewInspector creates an Inspector from its two stages.
func NewInspector(c *Connector, e *Extractor) *Inspector {
	return &Inspector{Connector: c, Extractor: e}
}

// Inspect fetches the leaf certificate of host:port and decodes it.
// Either a complete Record or an *Error is returned, never both.
func (i *Inspector) Inspect(ctx context.Context, host string, port int) (*Record, error) {
	der, err := i.Connector.Fetch(ctx, host, port)
	if err != nil {
		return nil, err
	}

	rec, err := i.Extractor.Parse(der)
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return nil, newError(e.Kind, host, port, e.Err)
		}
		return nil, newError(KindDecode, host, port, err)
	}

	rec.Host = host
	rec.Port = port
	return rec, nil
}
