package nodelog

import (
	"time"

	"go.uber.org/zap"
)

func New(logger *zap.Logger) *Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Logger{
		Zap: logger,
		now: time.Now,
	}
}

func (logger *Logger) Record(severity Severity, node string, message string) {
	logger.lock.Lock()
	logger.entries = append(logger.entries, Entry{
		Time:     logger.now(),
		Severity: severity,
		Node:     node,
		Message:  message,
	})
	logger.lock.Unlock()

	fields := []zap.Field{zap.String("node", node)}

	switch severity {
	case SEVERITY_WARNING:
		logger.Zap.Warn(message, fields...)
	case SEVERITY_ERROR, SEVERITY_FATAL:
		logger.Zap.Error(message, append(fields, zap.String("severity", string(severity)))...)
	default:
		logger.Zap.Info(message, fields...)
	}
}

func (logger *Logger) Info(node string, message string) { logger.Record(SEVERITY_INFO, node, message) }
func (logger *Logger) Warning(node string, message string) {
	logger.Record(SEVERITY_WARNING, node, message)
}
func (logger *Logger) Error(node string, message string) {
	logger.Record(SEVERITY_ERROR, node, message)
}
func (logger *Logger) Fatal(node string, message string) {
	logger.Record(SEVERITY_FATAL, node, message)
}

func (logger *Logger) Entries() []Entry {
	logger.lock.Lock()
	defer logger.lock.Unlock()

	return append([]Entry(nil), logger.entries...)
}

func (logger *Logger) HasFatal() bool {
	for _, entry := range logger.Entries() {
		if entry.Severity == SEVERITY_FATAL {
			return true
		}
	}

	return false
}

// Failures returns error and fatal entries in the order they were recorded.
func (logger *Logger) Failures() []Entry {
	var failures []Entry

	for _, entry := range logger.Entries() {
		if entry.Severity == SEVERITY_ERROR || entry.Severity == SEVERITY_FATAL {
			failures = append(failures, entry)
		}
	}

	return failures
}

func (logger *Logger) ForNode(node string) []Entry {
	var entries []Entry

	for _, entry := range logger.Entries() {
		if entry.Node == node {
			entries = append(entries, entry)
		}
	}

	return entries
}
