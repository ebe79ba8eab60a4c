package components

import (
	"context"
	"strconv"

	"github.com/a-h/templ"
)

const (
	inputClass        = "mt-1 block w-full rounded-md border-slate-300 text-sm shadow-sm focus:border-slate-500 focus:ring-slate-500"
	invalidInputClass = "mt-1 block w-full rounded-md border-rose-400 text-sm shadow-sm focus:border-rose-500 focus:ring-rose-500"
)

// Field describes a labelled form control.
type Field struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	MaxLength   int
	Error       string
	Hint        string
}

// Option is a select choice.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

func fieldClass(f Field) string {
	if f.Error != "" {
		return invalidInputClass
	}
	return inputClass
}

func writeLabel(w *Writer, f Field) {
	w.Raw(`<label class="block text-sm font-medium text-slate-700"`)
	w.Attr("for", "field-"+f.Name)
	w.Raw(">")
	w.Text(f.Label)
	if f.Required {
		w.Raw(` <span class="text-rose-600">*</span>`)
	}
	w.Raw("</label>")
}

func writeFieldFooter(w *Writer, f Field) {
	if f.Error != "" {
		w.Raw(`<p class="mt-1 text-xs text-rose-600"`)
		w.Attr("data-field-error", f.Name)
		w.Raw(">")
		w.Text(f.Error)
		w.Raw("</p>")
	} else if f.Hint != "" {
		w.Raw(`<p class="mt-1 text-xs text-slate-500">`)
		w.Text(f.Hint)
		w.Raw("</p>")
	}
}

func writeCommonAttrs(w *Writer, f Field) {
	w.Attr("id", "field-"+f.Name)
	w.Attr("name", f.Name)
	w.Attr("class", fieldClass(f))
	w.BoolAttr("required", f.Required)
	if f.MaxLength > 0 {
		w.Attr("maxlength", strconv.Itoa(f.MaxLength))
	}
	if f.Error != "" {
		w.Attr("aria-invalid", "true")
	}
}

// Input renders a text-like input with its label and error.
func Input(f Field) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		if f.Type == "" {
			f.Type = "text"
		}
		w.Raw(`<div>`)
		writeLabel(w, f)
		w.Raw("<input")
		w.Attr("type", f.Type)
		writeCommonAttrs(w, f)
		w.Attr("value", f.Value)
		if f.Placeholder != "" {
			w.Attr("placeholder", f.Placeholder)
		}
		w.Raw(">")
		writeFieldFooter(w, f)
		w.Raw(`</div>`)
	})
}

// TextArea renders a multi-line input.
func TextArea(f Field) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		w.Raw(`<div>`)
		writeLabel(w, f)
		w.Raw("<textarea")
		writeCommonAttrs(w, f)
		w.Attr("rows", "3")
		if f.Placeholder != "" {
			w.Attr("placeholder", f.Placeholder)
		}
		w.Raw(">")
		w.Text(f.Value)
		w.Raw("</textarea>")
		writeFieldFooter(w, f)
		w.Raw(`</div>`)
	})
}

// Select renders a dropdown.
func Select(f Field, options []Option) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		w.Raw(`<div>`)
		writeLabel(w, f)
		w.Raw("<select")
		writeCommonAttrs(w, f)
		w.Raw(">")
		for _, opt := range options {
			w.Raw("<option")
			w.Attr("value", opt.Value)
			w.BoolAttr("selected", opt.Selected)
			w.Raw(">")
			w.Text(opt.Label)
			w.Raw("</option>")
		}
		w.Raw("</select>")
		writeFieldFooter(w, f)
		w.Raw(`</div>`)
	})
}

// Checkbox renders a single checkbox whose value is "true" when ticked.
func Checkbox(name, label string, checked bool) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		w.Raw(`<label class="inline-flex items-center gap-2 text-sm text-slate-700"><input type="checkbox" value="true" class="rounded border-slate-300"`)
		w.Attr("name", name)
		w.BoolAttr("checked", checked)
		w.Raw("><span>")
		w.Text(label)
		w.Raw("</span></label>")
	})
}

// CSRFField renders the hidden anti-forgery input.
func CSRFField(token, name string) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		w.Raw(`<input type="hidden"`)
		w.Attr("name", name)
		w.Attr("value", token)
		w.Raw(">")
	})
}

// FormError renders a form-level error summary.
func FormError(message string) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		if message == "" {
			return
		}
		w.Raw(`<div class="rounded-md border border-rose-200 bg-rose-50 px-4 py-3 text-sm text-rose-700" role="alert" data-form-error>`)
		w.Text(message)
		w.Raw(`</div>`)
	})
}

// FilterSelect renders an unlabelled compact select used in list filter bars.
func FilterSelect(name, ariaLabel string, options []Option) templ.Component {
	return Func(func(_ context.Context, w *Writer) {
		w.Raw(`<select class="rounded-md border-slate-300 text-sm"`)
		w.Attr("name", name)
		w.Attr("aria-label", ariaLabel)
		w.Raw(">")
		for _, opt := range options {
			w.Raw("<option")
			w.Attr("value", opt.Value)
			w.BoolAttr("selected", opt.Selected)
			w.Raw(">")
			w.Text(opt.Label)
			w.Raw("</option>")
		}
		w.Raw(`</select>`)
	})
}
