package log

import (
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

// Level selects the verbosity of the process-wide log backend. Its values
// grow with severity and are not interchangeable with logging.Level, whose
// numbering runs the other way; convert with toLoggingLevel.
type Level int

// The levels that can be passed to SetLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

var leveledBackend logging.LeveledBackend

// Logger is a named, leveled logger.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// New returns a logger for the named module.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// SetSink redirects all log output to sink. The current level is kept.
func SetSink(sink io.Writer) {
	level := logging.NOTICE
	if leveledBackend != nil {
		level = leveledBackend.GetLevel("")
	}

	backend := logging.NewLogBackend(sink, "", 0)
	formatted := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(formatted)
	leveledBackend.SetLevel(level, "")
	logging.SetBackend(leveledBackend)
}

// SetLevel sets the verbosity for every module.
func SetLevel(level Level) {
	leveledBackend.SetLevel(toLoggingLevel(level), "")
}

// VerbosityLevel maps a count of -v flags to a level.
func VerbosityLevel(verbosity int) Level {
	switch {
	case verbosity >= 2:
		return Debug
	case verbosity == 1:
		return Info
	default:
		return Notice
	}
}

func toLoggingLevel(level Level) logging.Level {
	switch level {
	case Debug:
		return logging.DEBUG
	case Info:
		return logging.INFO
	case Warning:
		return logging.WARNING
	case Error:
		return logging.ERROR
	default:
		return logging.NOTICE
	}
}

// Printer adapts a Logger to the Printf-style interface used by the renderer.
// Messages are emitted at INFO with any trailing newline removed.
type Printer struct {
	Logger Logger
}

// Printf logs a formatted message at INFO level.
func (p Printer) Printf(format string, args ...interface{}) {
	p.Logger.Infof(strings.TrimRight(format, "\n"), args...)
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
