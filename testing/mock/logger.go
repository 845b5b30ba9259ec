package mock

import "github.com/tendermint/tendermint/libs/log"

var _ log.Logger = (*RecordingLogger)(nil)

// Log levels recorded by RecordingLogger.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// LogEntry is a single info or error line written by a keeper.
type LogEntry struct {
	Level   string
	Message string
	Params  []interface{}
}

// RecordingLogger keeps info and error lines in order and the last keyvals passed to With.
// Debug lines are dropped.
type RecordingLogger struct {
	Entries []LogEntry
	Context []interface{}
}

// NewRecordingLogger returns an empty RecordingLogger.
func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) Debug(string, ...interface{}) {}

func (l *RecordingLogger) Info(msg string, params ...interface{}) {
	l.Entries = append(l.Entries, LogEntry{Level: LevelInfo, Message: msg, Params: params})
}

func (l *RecordingLogger) Error(msg string, params ...interface{}) {
	l.Entries = append(l.Entries, LogEntry{Level: LevelError, Message: msg, Params: params})
}

// With records the keyvals and returns the same logger so scoped loggers share entries.
func (l *RecordingLogger) With(keyvals ...interface{}) log.Logger {
	l.Context = keyvals
	return l
}

// Last returns the most recent entry, or false if nothing was logged.
func (l *RecordingLogger) Last() (LogEntry, bool) {
	if len(l.Entries) == 0 {
		return LogEntry{}, false
	}
	return l.Entries[len(l.Entries)-1], true
}
