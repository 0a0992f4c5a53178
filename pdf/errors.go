package pdf

import (
	"errors"
	"fmt"
)

// Layout error kinds, use errors.Is to match them.
var (
	ErrBlockTooLarge     = errors.New("block too large")
	ErrColumnMismatch    = errors.New("column mismatch")
	ErrTooWide           = errors.New("columns wider than page")
	ErrInvalidColumnSpec = errors.New("invalid column spec")
	ErrInvalidHeight     = errors.New("invalid height")
	ErrEmptyGrid         = errors.New("empty grid")
	ErrMisplacedFooter   = errors.New("footer must be the final block")
	ErrInvalidBlock      = errors.New("invalid block")
)

// LayoutError is a fatal condition that prevents a valid document from being
// produced. The compose that raised it must be discarded.
type LayoutError struct {
	Kind   error
	Block  string
	Detail string
}

func (e *LayoutError) Error() string {
	msg := e.Kind.Error()
	if e.Block != "" {
		msg = fmt.Sprintf("%s: %s", e.Block, msg)
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	return "layout: " + msg
}

func (e *LayoutError) Unwrap() error {
	return e.Kind
}

func layoutErrorf(kind error, block string, format string, args ...any) *LayoutError {
	return &LayoutError{Kind: kind, Block: block, Detail: fmt.Sprintf(format, args...)}
}

// IsLayoutError reports whether err is (or wraps) a LayoutError
func IsLayoutError(err error) bool {
	var le *LayoutError
	return errors.As(err, &le)
}

// Sink contract violations. These indicate caller bugs, not runtime
// conditions.
var (
	ErrSinkClosed      = errors.New("sink is closed")
	ErrSinkNotOpen     = errors.New("sink is not open")
	ErrSinkAlreadyOpen = errors.New("sink is already open")
)

// SinkWriteError wraps a failure of the underlying output while flushing.
type SinkWriteError struct {
	Err error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("sink write failed: %v", e.Err)
}

func (e *SinkWriteError) Unwrap() error {
	return e.Err
}
