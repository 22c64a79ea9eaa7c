package logging

import (
	"fmt"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
)

// StatusField marks an info-level entry for rendering with the OK prefix,
// used for per-folder success confirmations.
const StatusField = "status"

// StatusOk is the StatusField value that selects the OK prefix.
const StatusOk = "ok"

// Ok logs an info-level entry that both sinks render with the OK prefix.
func Ok(logger log.FieldLogger, format string, args ...interface{}) {
	logger.WithField(StatusField, StatusOk).Infof(format, args...)
}

// LevelText returns the prefix recorded for an entry: INFO, WARN, ERROR or
// OK, padded to a fixed width so messages line up across levels.
func LevelText(entry *log.Entry) string {
	if entry.Data[StatusField] == StatusOk {
		return "OK   "
	}
	switch entry.Level {
	case log.WarnLevel:
		return "WARN "
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		return "ERROR"
	default:
		return "INFO "
	}
}

// CommandLineFormatter renders entries as "LEVEL message" lines with a
// colored level token. FileHook records the same text prefixed with a
// timestamp, so terminal output and the run log mirror each other.
type CommandLineFormatter struct{}

func (f *CommandLineFormatter) Format(entry *log.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("%s %s\n", coloredLevelText(entry), entry.Message)), nil
}

func coloredLevelText(entry *log.Entry) string {
	text := LevelText(entry)
	if entry.Data[StatusField] == StatusOk {
		return color.GreenString(text)
	}
	switch entry.Level {
	case log.WarnLevel:
		return color.YellowString(text)
	case log.ErrorLevel, log.FatalLevel, log.PanicLevel:
		return color.RedString(text)
	default:
		return color.CyanString(text)
	}
}
