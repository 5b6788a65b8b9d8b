package testutils

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry is a captured record flattened into a map. The keys "level" and
// "message" hold the record's level and message.
type LogEntry map[string]any

// TestSlogHandler is a memory-backed slog.Handler. Loggers derived with With
// share the same entries.
type TestSlogHandler struct {
	store *entryStore
	attrs []slog.Attr
	level slog.Level
}

type entryStore struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ slog.Handler = (*TestSlogHandler)(nil)

// NewTestSlogHandler captures records at level and above.
func NewTestSlogHandler(level slog.Level) *TestSlogHandler {
	return &TestSlogHandler{store: &entryStore{}, level: level}
}

// NewTestLogger returns a logger writing to a new handler, and the handler.
func NewTestLogger() (*slog.Logger, *TestSlogHandler) {
	h := NewTestSlogHandler(slog.LevelDebug)
	return slog.New(h), h
}

func (h *TestSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *TestSlogHandler) Handle(_ context.Context, r slog.Record) error {
	entry := LogEntry{
		"level":   r.Level.String(),
		"message": r.Message,
	}
	for _, a := range h.attrs {
		entry[a.Key] = a.Value.Resolve().Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		entry[a.Key] = a.Value.Resolve().Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.entries = append(h.store.entries, entry)
	return nil
}

func (h *TestSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &TestSlogHandler{store: h.store, attrs: merged, level: h.level}
}

// WithGroup is not needed by this codebase's loggers; groups are flattened.
func (h *TestSlogHandler) WithGroup(string) slog.Handler {
	return h
}

// Entries returns a copy of every captured entry.
func (h *TestSlogHandler) Entries() []LogEntry {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return append([]LogEntry(nil), h.store.entries...)
}

// Find returns the entries whose message equals msg.
func (h *TestSlogHandler) Find(msg string) []LogEntry {
	var out []LogEntry
	for _, e := range h.Entries() {
		if e["message"] == msg {
			out = append(out, e)
		}
	}
	return out
}

// Clear drops every captured entry.
func (h *TestSlogHandler) Clear() {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.entries = nil
}
