// Package lfmt contains helpers for writing formatted lisp values.
package lfmt

import "io"

// WriteOp is a function that looks like w.Write but may involve many calls to
// w.Write and aggregate the result.
type WriteOp func(w io.Writer) (int, error)

// Writer is an io.Writer that tracks the total number of bytes written across
// all calls to its methods.  The first error encountered is sticky: once a
// write fails every following write is skipped and returns the same error, so
// a formatter can issue a sequence of writes and check the result once.
type Writer struct {
	w   io.Writer
	n   int
	err error
}

// NewWriter wraps w as a counting Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) count(n int, err error) (int, error) {
	w.n += n
	if err != nil && w.err == nil {
		w.err = err
	}
	return n, err
}

// Write implements io.Writer
func (w *Writer) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.count(w.w.Write(b))
}

// WriteString implements io.StringWriter
func (w *Writer) WriteString(s string) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.count(io.WriteString(w.w, s))
}

// Do passes the underlying io.Writer to op and counts the number of bytes op
// reports.  Do is used instead of passing w itself to a function that writes
// many times, so the counter is updated once.
func (w *Writer) Do(op WriteOp) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.count(op(w.w))
}

// N returns the total number of bytes written.
func (w *Writer) N() int {
	return w.n
}

// Err returns the first error encountered by w.
func (w *Writer) Err() error {
	return w.err
}

// Result returns N() and Err(), the conventional return values of a
// formatting function.
func (w *Writer) Result() (int, error) {
	return w.n, w.err
}
