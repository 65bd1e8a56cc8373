// internal/logging/logging.go
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes timestamped, levelled lines.
// Every line goes to every sink; there is no per-sink level filtering.
type Logger struct {
	l *log.Logger
}

// New builds a logger over stdout plus a rotating log file.
// An empty filename disables the file sink.
func New(filename string) *Logger {
	out := io.Writer(os.Stdout)

	if filename != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    10, // MB
			MaxBackups: 3,
		})
	}

	return NewWriter(out)
}

// NewWriter builds a logger over an arbitrary sink.
func NewWriter(out io.Writer) *Logger {
	return &Logger{
		l: log.New(out, "", log.LstdFlags),
	}
}

func (lg *Logger) Infof(format string, args ...any) {
	lg.l.Printf("INFO - "+format, args...)
}

func (lg *Logger) Warnf(format string, args ...any) {
	lg.l.Printf("WARNING - "+format, args...)
}

func (lg *Logger) Errorf(format string, args ...any) {
	lg.l.Printf("ERROR - "+format, args...)
}
