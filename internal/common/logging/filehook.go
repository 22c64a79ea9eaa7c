package logging

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/sweepproject/sweep/internal/common/util"
)

// TimestampFormat is the layout for run log entry and marker timestamps.
const TimestampFormat = "2006-01-02 15:04:05"

// FileHook mirrors every entry into the run log as a
// "TIMESTAMP LEVEL message" line. The caller owns the writer's lifecycle;
// the hook never closes it.
type FileHook struct {
	W     io.Writer
	Clock util.Clock
}

func NewFileHook(w io.Writer) *FileHook {
	return &FileHook{W: w, Clock: &util.DefaultClock{}}
}

func (h *FileHook) Levels() []log.Level { return log.AllLevels }

func (h *FileHook) Fire(entry *log.Entry) error {
	_, err := fmt.Fprintf(h.W, "%s %s %s\n", h.Clock.Now().Format(TimestampFormat), LevelText(entry), entry.Message)
	return err
}

// NewRunLogger returns a logger that writes colored "LEVEL message" lines to
// out and timestamped lines to logFile. Timestamps come from clock.
func NewRunLogger(out, logFile io.Writer, clock util.Clock) *log.Logger {
	logger := log.New()
	logger.SetOutput(out)
	logger.SetFormatter(&CommandLineFormatter{})
	hook := NewFileHook(logFile)
	hook.Clock = clock
	logger.AddHook(hook)
	return logger
}
