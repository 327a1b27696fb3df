package logging

import "sync"

// MockLogger is a Logger implementation for tests. It records every entry
// so that tests can assert on what was logged.
type MockLogger struct {
	mu      sync.Mutex
	Entries []MockEntry
}

// MockEntry is one captured log call.
type MockEntry struct {
	Level   string
	Message string
	Fields  []Field
	Err     error
}

func (m *MockLogger) record(level, msg string, err error, fields []Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, MockEntry{Level: level, Message: msg, Fields: fields, Err: err})
}

func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("debug", msg, nil, fields) }
func (m *MockLogger) Info(msg string, fields ...Field)  { m.record("info", msg, nil, fields) }
func (m *MockLogger) Warn(msg string, fields ...Field)  { m.record("warn", msg, nil, fields) }
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("error", msg, nil, fields) }

// WithError records nothing by itself; the error is attached to subsequent
// entries through the returned logger.
func (m *MockLogger) WithError(err error) Logger {
	return &fieldLogger{parent: m, err: err}
}

func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return &fieldLogger{parent: m, fields: []Field{{Key: key, Value: value}}}
}

// MessagesAt returns the messages logged at the given level.
func (m *MockLogger) MessagesAt(level string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

type fieldLogger struct {
	parent *MockLogger
	fields []Field
	err    error
}

func (f *fieldLogger) log(level, msg string, fields []Field) {
	f.parent.record(level, msg, f.err, append(f.fields, fields...))
}

func (f *fieldLogger) Debug(msg string, fields ...Field) { f.log("debug", msg, fields) }
func (f *fieldLogger) Info(msg string, fields ...Field)  { f.log("info", msg, fields) }
func (f *fieldLogger) Warn(msg string, fields ...Field)  { f.log("warn", msg, fields) }
func (f *fieldLogger) Error(msg string, fields ...Field) { f.log("error", msg, fields) }

func (f *fieldLogger) WithError(err error) Logger {
	return &fieldLogger{parent: f.parent, fields: f.fields, err: err}
}

func (f *fieldLogger) WithField(key string, value interface{}) Logger {
	return &fieldLogger{parent: f.parent, fields: append(f.fields, Field{Key: key, Value: value}), err: f.err}
}
