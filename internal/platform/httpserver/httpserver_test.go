package httpserver

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAppliesTimeouts(t *testing.T) {
	srv := New(":0", http.NewServeMux(), Timeouts{ReadHeader: time.Second, Write: 2 * time.Second, Idle: 3 * time.Second})

	assert.Equal(t, ":0", srv.Addr)
	assert.Equal(t, time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 2*time.Second, srv.WriteTimeout)
	assert.Equal(t, 3*time.Second, srv.IdleTimeout)
}

func TestNewFillsZeroTimeouts(t *testing.T) {
	srv := New(":0", nil, Timeouts{})

	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 30*time.Second, srv.WriteTimeout)
	assert.Equal(t, 2*time.Minute, srv.IdleTimeout)
}
