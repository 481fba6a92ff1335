package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	ID        int64     `json:"id"`
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "debug", "info", "notice", "warning"
}

// Console keeps the most recent render log messages for the web client
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	capacity int
	nextID   int64
}

// NewConsole creates a console holding at most capacity messages
func NewConsole(capacity int) *Console {
	return &Console{capacity: capacity}
}

// Append stores a message, dropping the oldest when full
func (c *Console) Append(msg ConsoleMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	msg.ID = c.nextID
	c.messages = append(c.messages, msg)
	if len(c.messages) > c.capacity {
		c.messages = c.messages[len(c.messages)-c.capacity:]
	}
}

// Since returns the buffered messages with an ID greater than id
func (c *Console) Since(id int64) []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := []ConsoleMessage{}
	for _, msg := range c.messages {
		if msg.ID > id {
			out = append(out, msg)
		}
	}
	return out
}

// WebLogger implements core.Logger by forwarding to a server logger and
// copying Info and above to the console
type WebLogger struct {
	renderID string
	base     core.Logger
	console  *Console
}

// NewWebLogger creates a new web logger for a specific render
func NewWebLogger(renderID string, base core.Logger, console *Console) core.Logger {
	return &WebLogger{
		renderID: renderID,
		base:     base,
		console:  console,
	}
}

func (wl *WebLogger) Debugf(format string, args ...interface{}) {
	wl.base.Debugf("[%s] "+format, append([]interface{}{wl.renderID}, args...)...)
}

func (wl *WebLogger) Infof(format string, args ...interface{}) {
	wl.base.Infof("[%s] "+format, append([]interface{}{wl.renderID}, args...)...)
	wl.record("info", format, args)
}

func (wl *WebLogger) Noticef(format string, args ...interface{}) {
	wl.base.Noticef("[%s] "+format, append([]interface{}{wl.renderID}, args...)...)
	wl.record("notice", format, args)
}

func (wl *WebLogger) Warningf(format string, args ...interface{}) {
	wl.base.Warningf("[%s] "+format, append([]interface{}{wl.renderID}, args...)...)
	wl.record("warning", format, args)
}

func (wl *WebLogger) record(level, format string, args []interface{}) {
	if wl.console == nil {
		return
	}
	wl.console.Append(ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   fmt.Sprintf(format, args...),
		Timestamp: time.Now(),
		Level:     level,
	})
}
