package pdf

import (
	"bufio"
	"io"
)

// Sink receives drawing operations in order and turns them into an output
// document.
//
// Open must be called exactly once before Emit. Close flushes everything that
// was emitted to the writer passed to Open; after Close, Emit fails with
// ErrSinkClosed. Abort marks the document as unusable: a following Close
// releases resources without writing anything. Callers must make sure Close
// runs on every path.
type Sink interface {
	Open(w io.Writer) error
	Emit(op Op) error
	Close() error
	Abort()
}

type sinkState int

const (
	stateNew sinkState = iota
	stateOpen
	stateAborted
	stateClosed
)

func (s sinkState) checkEmit() error {
	switch s {
	case stateNew:
		return ErrSinkNotOpen
	case stateAborted, stateClosed:
		return ErrSinkClosed
	}
	return nil
}

// Recorder is an in-memory sink that keeps the op log. On Close it writes one
// line per op to the writer, giving a byte-comparable trace of a render.
type Recorder struct {
	state   sinkState
	aborted bool
	w       io.Writer
	ops     []Op
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Open(w io.Writer) error {
	if r.state != stateNew {
		return ErrSinkAlreadyOpen
	}
	r.w = w
	r.state = stateOpen
	return nil
}

func (r *Recorder) Emit(op Op) error {
	if err := r.state.checkEmit(); err != nil {
		return err
	}
	r.ops = append(r.ops, op)
	return nil
}

func (r *Recorder) Abort() {
	if r.state == stateOpen {
		r.state = stateAborted
		r.aborted = true
	}
}

func (r *Recorder) Close() error {
	switch r.state {
	case stateClosed:
		return nil
	case stateAborted, stateNew:
		r.state = stateClosed
		return nil
	}
	r.state = stateClosed
	if r.w == nil {
		return nil
	}

	bw := bufio.NewWriter(r.w)
	for _, op := range r.ops {
		if _, err := bw.WriteString(op.String() + "\n"); err != nil {
			return &SinkWriteError{Err: err}
		}
	}
	if err := bw.Flush(); err != nil {
		return &SinkWriteError{Err: err}
	}
	return nil
}

// Ops returns a copy of the recorded ops
func (r *Recorder) Ops() []Op {
	return append([]Op(nil), r.ops...)
}

// Aborted reports whether the recorded document was aborted
func (r *Recorder) Aborted() bool {
	return r.aborted
}
