// Package log wraps a zap.SugaredLogger behind the teacher's own
// Trace/Debug/Info/Warn/Error(msg string, kv ...interface{}) call-site
// idiom, so code carried over from the teacher needs no rewriting at the
// call site even though the backing implementation changed (see
// SPEC_FULL.md's AMBIENT STACK — the teacher's own internal log mirror in
// the retrieval pack was missing the go-ethereum log15 types it depends
// on, so this repo backs the same idiom with zap instead).
package log

import "go.uber.org/zap"

// Logger satisfies cuckoo.Logger and service.Logger structurally.
type Logger struct {
	s *zap.SugaredLogger
}

// New builds a production zap logger (JSON encoding, Info level and
// above) and wraps it.
func New() (*Logger, error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &Logger{s: zl.Sugar()}, nil
}

// NewDevelopment builds a console-encoded, human-readable logger with
// Debug level enabled, suited to local CLI runs.
func NewDevelopment() (*Logger, error) {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &Logger{s: zl.Sugar()}, nil
}

// Sync flushes any buffered log entries; callers should defer it after
// construction, matching zap's own documented usage.
func (l *Logger) Sync() error { return l.s.Sync() }

// Trace has no direct zap level equivalent; mapped to Debug, the same way
// the teacher's own log.Trace calls were the most verbose tier below Debug.
func (l *Logger) Trace(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l *Logger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...interface{})  { l.s.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...interface{})  { l.s.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
