package transfer

import "io"

// wc is an internal helper to make wrapping a writer/closer pair easier.
type wc struct {
	io.Writer
	io.Closer
}

// Close closes the nested writer if a Closer was supplied.
func (w *wc) Close() error {
	if w.Closer != nil {
		return w.Closer.Close()
	}
	return nil
}
