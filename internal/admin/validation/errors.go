package validation

import (
	"errors"
	"net/mail"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Errors maps form field names to a user-facing message.
type Errors map[string]string

// Error implements the error interface.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, exists := e[field]; exists {
		return
	}
	e[field] = msg
}

// Required records a message when value is blank.
func (e Errors) Required(field, value, label string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, label+" wajib diisi.")
	}
}

// MaxLength records a message when value exceeds max characters.
func (e Errors) MaxLength(field, value, label string, max int) {
	if utf8.RuneCountInString(value) > max {
		e.Add(field, label+" maksimal "+strconv.Itoa(max)+" karakter.")
	}
}

// Email records a message when value is present but not a bare address.
func (e Errors) Email(field, value, label string) {
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		e.Add(field, label+" tidak valid.")
	}
}

// OneOf records a message when value is not one of allowed.
func (e Errors) OneOf(field, value, label string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	e.Add(field, label+" tidak dikenal.")
}

// Err returns nil when no messages were recorded.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// FieldErrors extracts Errors from err, if any.
func FieldErrors(err error) (Errors, bool) {
	var fe Errors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// FoldKey returns the case-folded form of value used for case-insensitive
// uniqueness. Every store compares keys with this fold, including non-ASCII text.
func FoldKey(value string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Fold().String(strings.TrimSpace(value))
}
