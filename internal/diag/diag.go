// Package diag carries non-fatal diagnostics out of the lowering core
// without reaching for stderr directly, so deeply nested lowering
// functions stay callable from tests and from callers who want to
// collect, filter, or reformat warnings instead of printing them.
package diag

import "fmt"

// Warning is a single non-fatal diagnostic raised during lowering.
type Warning interface {
	error
	Position() string
}

// TypeCoercionWarning is raised when an assignment stores a value whose type
// differs from the slot's type; the slot keeps its type and the value is
// converted to it.
type TypeCoercionWarning struct {
	Pos      string
	Variable string
	From, To string
}

func (w *TypeCoercionWarning) Error() string {
	return fmt.Sprintf("%s: variable %q coerced from %s to %s", w.Pos, w.Variable, w.From, w.To)
}

func (w *TypeCoercionWarning) Position() string { return w.Pos }

// Sink collects Warnings raised during one Lower call. The zero value
// discards nothing it receives, but a nil *Sink is a valid no-op sink, so
// callers that don't care about warnings can pass one without allocating.
type Sink struct {
	warnings []Warning
}

// NewSink returns an empty Sink ready to receive warnings.
func NewSink() *Sink {
	return &Sink{}
}

// Emit records w. Emit on a nil Sink is a no-op.
func (s *Sink) Emit(w Warning) {
	if s == nil {
		return
	}
	s.warnings = append(s.warnings, w)
}

// Warnings returns every warning recorded so far, in emission order.
func (s *Sink) Warnings() []Warning {
	if s == nil {
		return nil
	}
	return s.warnings
}

// Len reports how many warnings have been recorded.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}
	return len(s.warnings)
}
