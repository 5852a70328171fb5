// Package dbconn models a database connection that exists once per process.
package dbconn

import (
	"log/slog"
	"sync"

	"github.com/idilsaglam/bootcamp/internal/logging"
)

// Connection simulates a connection handle. Only its connected flag is real.
type Connection struct {
	mu        sync.Mutex
	connected bool
	log       *slog.Logger
}

var (
	instance *Connection
	once     sync.Once
)

// Instance returns the process-wide connection, creating it on first use.
func Instance() *Connection { return InstanceWith(nil) }

// InstanceWith is Instance with the logger the connection gets if this call
// is the one that builds it. Later calls keep the first logger.
func InstanceWith(log *slog.Logger) *Connection {
	once.Do(func() {
		instance = New(log)
	})
	return instance
}

// New builds an independent connection for callers that pass it explicitly
// instead of relying on the shared instance.
func New(log *slog.Logger) *Connection {
	if log == nil {
		log = logging.Discard()
	}
	log.Info("initializing database connection")
	return &Connection{log: log}
}

// Connect opens the connection. It reports false when one is already open.
func (c *Connection) Connect() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		c.log.Warn("an active connection already exists")
		return false
	}
	c.connected = true
	c.log.Info("connection successfully established")
	return true
}

func (c *Connection) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	c.log.Info("connection closed")
}

func (c *Connection) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}
