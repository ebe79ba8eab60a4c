package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	custommw "finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	adminsupplier "finitefield.org/apotek-admin/internal/admin/supplier"
	suppliertpl "finitefield.org/apotek-admin/internal/admin/templates/supplier"
	"finitefield.org/apotek-admin/internal/platform/observability"
)

const supplierLoadError = "Data supplier gagal dimuat. Coba lagi beberapa saat."

// SupplierPage renders the supplier list.
func (h *Handlers) SupplierPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := supplierQueryState(r)

	suppliers, err := h.suppliers.List(ctx, supplierQuery(state))
	errMsg := ""
	if err != nil {
		observability.FromContext(ctx).Error("supplier: list failed", zap.Error(err))
		errMsg = supplierLoadError
		suppliers = nil
	}

	data := suppliertpl.BuildPageData(custommw.BasePathFromContext(ctx), state, suppliers, errMsg)
	render(w, r, suppliertpl.Index(data), http.StatusOK)
}

// SupplierTable renders the table fragment for htmx search swaps.
func (h *Handlers) SupplierTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := supplierQueryState(r)

	suppliers, err := h.suppliers.List(ctx, supplierQuery(state))
	errMsg := ""
	if err != nil {
		observability.FromContext(ctx).Error("supplier: list fragment failed", zap.Error(err))
		errMsg = supplierLoadError
		suppliers = nil
	}

	pushURL(w, r, "/supplier")
	render(w, r, suppliertpl.Table(suppliertpl.TablePayload(state, suppliers, errMsg)), http.StatusOK)
}

// SupplierCreateForm renders the empty create form.
func (h *Handlers) SupplierCreateForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := suppliertpl.BuildCreatePageData(custommw.BasePathFromContext(ctx), custommw.CSRFTokenFromContext(ctx), suppliertpl.DefaultForm())
	render(w, r, suppliertpl.Create(data), http.StatusOK)
}

// SupplierCreate stores a new supplier.
func (h *Handlers) SupplierCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form, ok := h.readSupplierForm(w, r, "")
	if !ok {
		return
	}

	created, err := h.suppliers.Create(ctx, supplierRequest(form))
	if err != nil {
		outcome := saveFailure(ctx, "supplier", err, adminsupplier.ErrDuplicate, adminsupplier.DuplicateFieldError())
		form.Errors = outcome.fields
		form.Error = outcome.message
		h.renderSupplierForm(w, r, "", form, outcome.status)
		return
	}

	observability.FromContext(ctx).Info("supplier created", zap.String("id", created.ID), zap.String("code", created.Code))
	redirectWithFlash(w, r, listPath(r, "/supplier"), "Supplier "+created.Name+" berhasil ditambahkan.")
}

// SupplierEditForm renders the edit form filled with the stored values.
func (h *Handlers) SupplierEditForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	s, err := h.suppliers.Get(ctx, id)
	if err != nil {
		lookupFailed(w, r, "supplier", err, adminsupplier.ErrNotFound)
		return
	}
	h.renderSupplierForm(w, r, id, suppliertpl.FormFromSupplier(s), http.StatusOK)
}

// SupplierUpdate saves changes to a supplier.
func (h *Handlers) SupplierUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	form, ok := h.readSupplierForm(w, r, id)
	if !ok {
		return
	}

	updated, err := h.suppliers.Update(ctx, id, supplierRequest(form))
	if errors.Is(err, adminsupplier.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		outcome := saveFailure(ctx, "supplier", err, adminsupplier.ErrDuplicate, adminsupplier.DuplicateFieldError())
		form.Errors = outcome.fields
		form.Error = outcome.message
		h.renderSupplierForm(w, r, id, form, outcome.status)
		return
	}

	observability.FromContext(ctx).Info("supplier updated", zap.String("id", updated.ID), zap.String("code", updated.Code))
	redirectWithFlash(w, r, listPath(r, "/supplier"), "Supplier "+updated.Name+" berhasil diperbarui.")
}

// SupplierToggleStatus flips a supplier between active and inactive.
func (h *Handlers) SupplierToggleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	s, err := h.suppliers.ToggleStatus(ctx, id)
	if err != nil {
		lookupFailed(w, r, "supplier", err, adminsupplier.ErrNotFound)
		return
	}

	observability.FromContext(ctx).Info("supplier status changed", zap.String("id", s.ID), zap.String("status", string(s.Status)))
	message := "Supplier " + s.Name + " dinonaktifkan."
	if s.Status == adminsupplier.StatusActive {
		message = "Supplier " + s.Name + " diaktifkan."
	}
	redirectWithFlash(w, r, listPath(r, "/supplier"), message)
}

// SupplierDelete removes a supplier.
func (h *Handlers) SupplierDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	s, err := h.suppliers.Get(ctx, id)
	if err != nil {
		lookupFailed(w, r, "supplier", err, adminsupplier.ErrNotFound)
		return
	}
	if err := h.suppliers.Delete(ctx, id); err != nil {
		if errors.Is(err, adminsupplier.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		observability.FromContext(ctx).Error("supplier: delete failed", zap.String("id", id), zap.Error(err))
		redirectWithToast(w, r, listPath(r, "/supplier"), "Supplier "+s.Name+" gagal dihapus.", "danger")
		return
	}

	observability.FromContext(ctx).Info("supplier deleted", zap.String("id", id), zap.String("code", s.Code))
	redirectWithFlash(w, r, listPath(r, "/supplier"), "Supplier "+s.Name+" berhasil dihapus.")
}

// readSupplierForm parses the submitted form. An unreadable body is answered
// with the form and a 400, and ok is false.
func (h *Handlers) readSupplierForm(w http.ResponseWriter, r *http.Request, id string) (suppliertpl.FormState, bool) {
	if err := r.ParseForm(); err != nil {
		form := suppliertpl.DefaultForm()
		form.Error = invalidFormMessage
		h.renderSupplierForm(w, r, id, form, http.StatusBadRequest)
		return form, false
	}
	return suppliertpl.FormState{
		Code:          r.PostFormValue("kode"),
		Name:          r.PostFormValue("nama"),
		Address:       r.PostFormValue("alamat"),
		Phone:         r.PostFormValue("no_telepon"),
		Email:         r.PostFormValue("email"),
		ContactPerson: r.PostFormValue("kontak_person"),
		ContactPhone:  r.PostFormValue("no_hp_kontak"),
		NPWP:          r.PostFormValue("npwp"),
		Status:        r.PostFormValue("status"),
		Notes:         r.PostFormValue("catatan"),
	}, true
}

func supplierRequest(form suppliertpl.FormState) adminsupplier.CreateRequest {
	return adminsupplier.CreateRequest{
		Code:          form.Code,
		Name:          form.Name,
		Address:       form.Address,
		Phone:         form.Phone,
		Email:         form.Email,
		ContactPerson: form.ContactPerson,
		ContactPhone:  form.ContactPhone,
		NPWP:          form.NPWP,
		Status:        adminsupplier.Status(strings.TrimSpace(form.Status)),
		Notes:         form.Notes,
	}
}

// renderSupplierForm renders the create form, or the edit form of id when id is set.
func (h *Handlers) renderSupplierForm(w http.ResponseWriter, r *http.Request, id string, form suppliertpl.FormState, status int) {
	ctx := r.Context()
	base, token := custommw.BasePathFromContext(ctx), custommw.CSRFTokenFromContext(ctx)
	data, page := suppliertpl.BuildCreatePageData(base, token, form), suppliertpl.Create
	if id != "" {
		data, page = suppliertpl.BuildEditPageData(base, token, id, form), suppliertpl.Edit
	}
	if custommw.IsHTMXRequest(ctx) {
		render(w, r, suppliertpl.Form(data), status)
		return
	}
	render(w, r, page(data), status)
}

func supplierQueryState(r *http.Request) suppliertpl.QueryState {
	values := r.URL.Query()
	state := suppliertpl.QueryState{Search: strings.TrimSpace(values.Get("q"))}
	switch status := adminsupplier.Status(strings.TrimSpace(values.Get("status"))); status {
	case adminsupplier.StatusActive, adminsupplier.StatusInactive:
		state.Status = string(status)
	}
	return state
}

func supplierQuery(state suppliertpl.QueryState) adminsupplier.Query {
	return adminsupplier.Query{Search: state.Search, Status: adminsupplier.Status(state.Status)}
}
