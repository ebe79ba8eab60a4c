// Package components holds the small rendering building blocks shared by every page.
package components

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates markup and remembers the first write error so views can
// emit a sequence of fragments and check once at the end.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup verbatim.
func (w *Writer) Raw(parts ...string) {
	for _, part := range parts {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, part)
	}
}

// Text writes value with HTML escaping.
func (w *Writer) Text(value string) {
	w.Raw(templ.EscapeString(value))
}

// Attr writes ` name="value"` with the value escaped.
func (w *Writer) Attr(name, value string) {
	w.Raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

// URLAttr writes an href-like attribute after templ's URL sanitisation.
func (w *Writer) URLAttr(name, value string) {
	w.Attr(name, string(templ.URL(value)))
}

// BoolAttr writes a valueless attribute when on is true.
func (w *Writer) BoolAttr(name string, on bool) {
	if on {
		w.Raw(" ", name)
	}
}

// Render renders a nested component into the same stream.
func (w *Writer) Render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}

// Func adapts a writer-based render function into a templ component.
func Func(fn func(ctx context.Context, w *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := NewWriter(out)
		fn(ctx, w)
		return w.Err()
	})
}
