// Package body describes the recursive body tree (plain text, rich text,
// HTML with embedded resources, file attachments) and turns it into a lazy
// fragment stream during assembly.
package body

import (
	"io"

	"github.com/go-mailkit/mime/safebyte"
)

// FragmentIterator yields successive SafeByteBuffer fragments, returning
// io.EOF once exhausted. It is the pull-model counterpart of io.WriterTo:
// callers drain one fragment at a time instead of writing everything at
// once, so a large attachment never has to be held in memory whole.
type FragmentIterator interface {
	Next() (*safebyte.Buffer, error)
}

// ConstBuf is a FragmentIterator that yields a single fixed buffer once.
type ConstBuf struct {
	buf  *safebyte.Buffer
	done bool
}

// NewConstBuf wraps an already-validated buffer as a one-shot iterator.
func NewConstBuf(buf *safebyte.Buffer) *ConstBuf { return &ConstBuf{buf: buf} }

// ConstString validates s as 7-bit ASCII and wraps it as a one-shot
// iterator; it is how boundary frames, blank lines, and header text enter
// the fragment stream.
func ConstString(s string) FragmentIterator {
	buf, err := safebyte.FromASCIIString(s)
	if err != nil {
		return errIter{err}
	}
	return NewConstBuf(buf)
}

func (c *ConstBuf) Next() (*safebyte.Buffer, error) {
	if c.done {
		return nil, io.EOF
	}
	c.done = true
	return c.buf, nil
}

// errIter is a FragmentIterator that always fails; ConstString uses it to
// surface a validation failure through the normal Next() error path instead
// of panicking at construction time.
type errIter struct{ err error }

func (e errIter) Next() (*safebyte.Buffer, error) { return nil, e.err }

// Lazy defers calling factory until the first Next call, so constructing a
// body tree never does I/O or charset work until something actually reads
// from it.
type Lazy struct {
	factory func() (FragmentIterator, error)
	it      FragmentIterator
	err     error
}

// NewLazy wraps factory as a deferred FragmentIterator.
func NewLazy(factory func() (FragmentIterator, error)) *Lazy {
	return &Lazy{factory: factory}
}

func (l *Lazy) Next() (*safebyte.Buffer, error) {
	if l.err != nil {
		return nil, l.err
	}
	if l.it == nil {
		it, err := l.factory()
		if err != nil {
			l.err = err
			return nil, err
		}
		l.it = it
	}
	return l.it.Next()
}

// Concat drains a sequence of child iterators in order, one at a time.
type Concat struct {
	iters []FragmentIterator
	ix    int
}

// NewConcat returns a FragmentIterator that drains each of iters in turn.
func NewConcat(iters ...FragmentIterator) *Concat {
	return &Concat{iters: iters}
}

func (c *Concat) Next() (*safebyte.Buffer, error) {
	for c.ix < len(c.iters) {
		buf, err := c.iters[c.ix].Next()
		if err == io.EOF {
			c.ix++
			continue
		}
		if err != nil {
			return nil, err
		}
		return buf, nil
	}
	return nil, io.EOF
}

// Drain reads every fragment from it and concatenates them; it exists for
// tests and small bodies, not for the streaming path itself.
func Drain(it FragmentIterator) ([]byte, error) {
	var out []byte
	for {
		buf, err := it.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, buf.Bytes()...)
	}
}
