package ui

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"finitefield.org/apotek-admin/internal/admin/validation"
	"finitefield.org/apotek-admin/internal/platform/observability"
)

// saveOutcome is how a failed create or update is reported back on the form.
type saveOutcome struct {
	fields  map[string]string
	message string
	status  int
}

// saveFailure maps a Create or Update error onto the form. Field errors and the
// resource's duplicate sentinel are user-correctable and yield 422.
func saveFailure(ctx context.Context, resource string, err error, duplicate error, duplicateFields validation.Errors) saveOutcome {
	if fields, ok := validation.FieldErrors(err); ok {
		return saveOutcome{fields: fields, status: http.StatusUnprocessableEntity}
	}
	if errors.Is(err, duplicate) {
		return saveOutcome{fields: duplicateFields, status: http.StatusUnprocessableEntity}
	}
	observability.FromContext(ctx).Error("save failed", zap.String("resource", resource), zap.Error(err))
	return saveOutcome{
		message: "Data " + resource + " gagal disimpan. Coba lagi beberapa saat.",
		status:  http.StatusInternalServerError,
	}
}

const invalidFormMessage = "Formulir tidak dapat dibaca. Muat ulang halaman dan coba lagi."

// lookupFailed answers a request whose record could not be loaded. A missing
// record is a 404; anything else is logged and reported as a 500.
func lookupFailed(w http.ResponseWriter, r *http.Request, resource string, err, notFound error) {
	if errors.Is(err, notFound) {
		http.NotFound(w, r)
		return
	}
	observability.FromContext(r.Context()).Error("lookup failed", zap.String("resource", resource), zap.Error(err))
	http.Error(w, "Data "+resource+" gagal dimuat.", http.StatusInternalServerError)
}
