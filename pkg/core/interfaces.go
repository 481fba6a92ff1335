package core

// Logger is the leveled logging surface the rendering packages depend on.
// Loggers from pkg/log satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Noticef(format string, args ...interface{})
	Warningf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...interface{})   {}
func (NopLogger) Infof(string, ...interface{})    {}
func (NopLogger) Noticef(string, ...interface{})  {}
func (NopLogger) Warningf(string, ...interface{}) {}
