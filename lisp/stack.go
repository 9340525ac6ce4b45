package lisp

import (
	"fmt"
	"io"

	"github.com/bmatsuo/mclisp/parser/token"
)

// CallStack is a procedure call stack.
type CallStack struct {
	Frames []CallFrame
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	// Name is the symbol a procedure was called through, or "lambda" for an
	// immediate application.
	Name   string
	Source *token.Location
}

func (f *CallFrame) String() string {
	if f.Source == nil {
		return f.Name
	}
	return fmt.Sprintf("%s (%v)", f.Name, f.Source)
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{frames}
}

// Height returns the number of frames in the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new stack frame onto s.
func (s *CallStack) Push(name string, src *token.Location) {
	s.Frames = append(s.Frames, CallFrame{Name: name, Source: src})
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics if
// the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		_n, err := fmt.Fprintf(w, "%sheight %d: %s\n", indent, i, s.Frames[i].String())
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
