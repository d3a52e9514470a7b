package logger

import (
	"time"
)

// Console configures logging to stdout and stderr.
type Console struct {
	Enabled bool
	// UseConsoleWriter prints human readable lines instead of JSON.
	UseConsoleWriter bool
}

// RollingFile configures one lumberjack rotated log file.
type RollingFile struct {
	Name       string
	MaxSize    int // megabytes before rotation
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// LogFile configures file based logging, one rotated file per level group.
type LogFile struct {
	Enabled bool
	Path    string

	Access RollingFile
	Error  RollingFile
	Info   RollingFile
	Trace  RollingFile
	Warn   RollingFile
}

// DataDog configures shipping log lines to the datadog logs intake.
type DataDog struct {
	Enabled     bool
	APIKey      string
	Site        string // DD_SITE, e.g. "datadoghq.eu"
	ServiceName string
	Tags        string // comma separated ddtags
	Timeout     time.Duration
}

// Log is the logger configuration.
type Log struct {
	LogLevel string // trace, debug, info, warn, error

	// EnableAccessLogToConsole writes the http access log to stdout when Console is enabled.
	EnableAccessLogToConsole bool
	ReportCaller             bool
	DisableCheckAlive        bool // skip access lines of /checkalive

	// AppName and ServiceName are attached to every log line.
	AppName     string
	ServiceName string

	Console Console
	File    LogFile
	DataDog DataDog
}
