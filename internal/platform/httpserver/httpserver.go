// Package httpserver builds the workflow API server with the project's
// timeout policy applied.
package httpserver

import (
	"net/http"
	"time"
)

// Timeouts bounds request handling. Zero fields fall back to defaults so a
// missing env var never disables a limit.
type Timeouts struct {
	ReadHeader time.Duration
	Write      time.Duration
	Idle       time.Duration
}

func (t Timeouts) withDefaults() Timeouts {
	if t.ReadHeader <= 0 {
		t.ReadHeader = 5 * time.Second
	}
	if t.Write <= 0 {
		t.Write = 30 * time.Second
	}
	if t.Idle <= 0 {
		t.Idle = 2 * time.Minute
	}
	return t
}

// New builds the HTTP server. Every handler is an in-memory read or write,
// so the write timeout doubles as a hard request deadline.
func New(addr string, handler http.Handler, t Timeouts) *http.Server {
	t = t.withDefaults()
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: t.ReadHeader,
		WriteTimeout:      t.Write,
		IdleTimeout:       t.Idle,
	}
}
