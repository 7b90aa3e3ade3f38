// Package memory provides a logger backend that keeps entries in memory.
// It is meant for tests that assert on what the pipeline reported.
package memory

import (
	"fmt"
	"strings"
	"sync"
)

type Entry struct {
	Level   string
	Message string
	Keyvals []any
}

// Value returns the value logged for key, or nil when the key is absent.
func (e Entry) Value(key string) any {
	for i := 0; i+1 < len(e.Keyvals); i += 2 {
		if k, ok := e.Keyvals[i].(string); ok && k == key {
			return e.Keyvals[i+1]
		}
	}
	return nil
}

func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Level)
	b.WriteString(" ")
	b.WriteString(e.Message)
	for i := 0; i+1 < len(e.Keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", e.Keyvals[i], e.Keyvals[i+1])
	}
	return b.String()
}

type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (m *MemoryLogger) record(level, message string, keyvals []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kv := make([]any, len(keyvals))
	copy(kv, keyvals)
	m.entries = append(m.entries, Entry{Level: level, Message: message, Keyvals: kv})
}

func (m *MemoryLogger) Log(message string, keyvals ...any)   { m.record("log", message, keyvals) }
func (m *MemoryLogger) Debug(message string, keyvals ...any) { m.record("debug", message, keyvals) }
func (m *MemoryLogger) Info(message string, keyvals ...any)  { m.record("info", message, keyvals) }
func (m *MemoryLogger) Warn(message string, keyvals ...any)  { m.record("warn", message, keyvals) }
func (m *MemoryLogger) Error(message string, keyvals ...any) { m.record("error", message, keyvals) }

// Fatal records the entry without exiting.
func (m *MemoryLogger) Fatal(message string, keyvals ...any) { m.record("fatal", message, keyvals) }

// Entries returns a snapshot of everything logged so far.
func (m *MemoryLogger) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Find returns the entries at level whose message contains substr.
func (m *MemoryLogger) Find(level, substr string) []Entry {
	var out []Entry
	for _, e := range m.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			out = append(out, e)
		}
	}
	return out
}
