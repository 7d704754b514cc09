// Package diagnostics collects and renders the recoverable issues the
// parser reports while it keeps going. Fatal parse errors travel as Go
// errors instead; see parser.Error.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/zkcircuit/leoparse/internal/position"
)

// DiagnosticLevel represents the severity level of a diagnostic
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticWarning
	DiagnosticNote
)

func (dl DiagnosticLevel) String() string {
	switch dl {
	case DiagnosticError:
		return "error"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticNote:
		return "note"
	default:
		return "unknown"
	}
}

// MarshalText encodes the level by name.
func (dl DiagnosticLevel) MarshalText() ([]byte, error) { return []byte(dl.String()), nil }

// UnmarshalText decodes a level name written by MarshalText.
func (dl *DiagnosticLevel) UnmarshalText(text []byte) error {
	switch string(text) {
	case "error":
		*dl = DiagnosticError
	case "warning":
		*dl = DiagnosticWarning
	case "note":
		*dl = DiagnosticNote
	default:
		return fmt.Errorf("unknown diagnostic level %q", text)
	}
	return nil
}

// Diagnostic is a single reported issue.
type Diagnostic struct {
	Level   DiagnosticLevel `json:"level"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Span    position.Span   `json:"span"`
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Span.Start, d.Level, d.Code, d.Message)
}

// Handler accumulates diagnostics for one parse. It is not safe for
// concurrent use; every parse owns its own Handler.
type Handler struct {
	diagnostics []Diagnostic
	errorCount  int
	maxErrors   int
	dropped     int
}

// NewHandler creates an empty handler with no error limit.
func NewHandler() *Handler {
	return &Handler{diagnostics: make([]Diagnostic, 0)}
}

// SetErrorLimit caps how many error-level diagnostics are kept. Zero
// means unlimited.
func (h *Handler) SetErrorLimit(limit int) {
	h.maxErrors = limit
}

// Emit records a diagnostic.
func (h *Handler) Emit(d Diagnostic) {
	if d.Level == DiagnosticError {
		if h.maxErrors > 0 && h.errorCount >= h.maxErrors {
			h.dropped++
			return
		}
		h.errorCount++
	}
	h.diagnostics = append(h.diagnostics, d)
}

// Diagnostics returns the recorded diagnostics in emission order.
func (h *Handler) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(h.diagnostics))
	copy(out, h.diagnostics)
	return out
}

// Sorted returns the diagnostics ordered by source offset.
func (h *Handler) Sorted() []Diagnostic {
	out := h.Diagnostics()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Span.Start.Offset < out[j].Span.Start.Offset
	})
	return out
}

// Len returns the number of recorded diagnostics.
func (h *Handler) Len() int { return len(h.diagnostics) }

// HasErrors returns true if any error-level diagnostic was recorded.
func (h *Handler) HasErrors() bool { return h.errorCount > 0 }

// ErrorCount returns the number of error-level diagnostics kept.
func (h *Handler) ErrorCount() int { return h.errorCount }

// Dropped returns how many errors were discarded by the error limit.
func (h *Handler) Dropped() int { return h.dropped }

// Clear removes all diagnostics.
func (h *Handler) Clear() {
	h.diagnostics = h.diagnostics[:0]
	h.errorCount = 0
	h.dropped = 0
}
