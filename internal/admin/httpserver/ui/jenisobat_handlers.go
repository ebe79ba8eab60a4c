package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	custommw "finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	adminjenisobat "finitefield.org/apotek-admin/internal/admin/jenisobat"
	jenisobattpl "finitefield.org/apotek-admin/internal/admin/templates/jenisobat"
	"finitefield.org/apotek-admin/internal/platform/observability"
)

const jenisObatLoadError = "Data jenis obat gagal dimuat. Coba lagi beberapa saat."

// JenisObatPage renders the medicine type list.
func (h *Handlers) JenisObatPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := jenisObatQueryState(r)

	types, err := h.jenisObat.List(ctx, adminjenisobat.Query{Search: state.Search, ActiveOnly: state.ActiveOnly})
	errMsg := ""
	if err != nil {
		observability.FromContext(ctx).Error("jenis obat: list failed", zap.Error(err))
		errMsg = jenisObatLoadError
		types = nil
	}

	data := jenisobattpl.BuildPageData(custommw.BasePathFromContext(ctx), state, types, errMsg)
	render(w, r, jenisobattpl.Index(data), http.StatusOK)
}

// JenisObatTable renders the table fragment for htmx search swaps.
func (h *Handlers) JenisObatTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := jenisObatQueryState(r)

	types, err := h.jenisObat.List(ctx, adminjenisobat.Query{Search: state.Search, ActiveOnly: state.ActiveOnly})
	errMsg := ""
	if err != nil {
		observability.FromContext(ctx).Error("jenis obat: list fragment failed", zap.Error(err))
		errMsg = jenisObatLoadError
		types = nil
	}

	pushURL(w, r, "/jenis-obat")
	render(w, r, jenisobattpl.Table(jenisobattpl.TablePayload(state, types, errMsg)), http.StatusOK)
}

// JenisObatCreateForm renders the empty create form.
func (h *Handlers) JenisObatCreateForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := jenisobattpl.BuildCreatePageData(custommw.BasePathFromContext(ctx), custommw.CSRFTokenFromContext(ctx), jenisobattpl.DefaultForm())
	render(w, r, jenisobattpl.Create(data), http.StatusOK)
}

// JenisObatCreate stores a new medicine type.
func (h *Handlers) JenisObatCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form, ok := h.readJenisObatForm(w, r, "")
	if !ok {
		return
	}

	created, err := h.jenisObat.Create(ctx, jenisObatRequest(form))
	if err != nil {
		outcome := saveFailure(ctx, "jenis obat", err, adminjenisobat.ErrDuplicate, adminjenisobat.DuplicateFieldError())
		form.Errors = outcome.fields
		form.Error = outcome.message
		h.renderJenisObatForm(w, r, "", form, outcome.status)
		return
	}

	observability.FromContext(ctx).Info("jenis obat created", zap.String("id", created.ID))
	redirectWithFlash(w, r, listPath(r, "/jenis-obat"), "Jenis obat "+created.Name+" berhasil ditambahkan.")
}

// JenisObatEditForm renders the edit form filled with the stored values.
func (h *Handlers) JenisObatEditForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	t, err := h.jenisObat.Get(ctx, id)
	if err != nil {
		lookupFailed(w, r, "jenis obat", err, adminjenisobat.ErrNotFound)
		return
	}
	h.renderJenisObatForm(w, r, id, jenisobattpl.FormFromType(t), http.StatusOK)
}

// JenisObatUpdate saves changes to a medicine type.
func (h *Handlers) JenisObatUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	form, ok := h.readJenisObatForm(w, r, id)
	if !ok {
		return
	}

	updated, err := h.jenisObat.Update(ctx, id, jenisObatRequest(form))
	if errors.Is(err, adminjenisobat.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		outcome := saveFailure(ctx, "jenis obat", err, adminjenisobat.ErrDuplicate, adminjenisobat.DuplicateFieldError())
		form.Errors = outcome.fields
		form.Error = outcome.message
		h.renderJenisObatForm(w, r, id, form, outcome.status)
		return
	}

	observability.FromContext(ctx).Info("jenis obat updated", zap.String("id", updated.ID))
	redirectWithFlash(w, r, listPath(r, "/jenis-obat"), "Jenis obat "+updated.Name+" berhasil diperbarui.")
}

// JenisObatDelete removes a medicine type.
func (h *Handlers) JenisObatDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	t, err := h.jenisObat.Get(ctx, id)
	if err != nil {
		lookupFailed(w, r, "jenis obat", err, adminjenisobat.ErrNotFound)
		return
	}
	if err := h.jenisObat.Delete(ctx, id); err != nil {
		if errors.Is(err, adminjenisobat.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		observability.FromContext(ctx).Error("jenis obat: delete failed", zap.String("id", id), zap.Error(err))
		redirectWithToast(w, r, listPath(r, "/jenis-obat"), "Jenis obat "+t.Name+" gagal dihapus.", "danger")
		return
	}

	observability.FromContext(ctx).Info("jenis obat deleted", zap.String("id", id))
	redirectWithFlash(w, r, listPath(r, "/jenis-obat"), "Jenis obat "+t.Name+" berhasil dihapus.")
}

// readJenisObatForm parses the submitted form. An unreadable body is answered
// with the form and a 400, and ok is false.
func (h *Handlers) readJenisObatForm(w http.ResponseWriter, r *http.Request, id string) (jenisobattpl.FormState, bool) {
	form := jenisobattpl.FormState{}
	if err := r.ParseForm(); err != nil {
		form.Error = invalidFormMessage
		h.renderJenisObatForm(w, r, id, form, http.StatusBadRequest)
		return form, false
	}
	form.Name = r.PostFormValue("nama")
	form.Description = r.PostFormValue("deskripsi")
	form.Active = parseCheckbox(r.PostFormValue("aktif"))
	return form, true
}

func jenisObatRequest(form jenisobattpl.FormState) adminjenisobat.CreateRequest {
	return adminjenisobat.CreateRequest{
		Name:        form.Name,
		Description: form.Description,
		Active:      form.Active,
	}
}

// renderJenisObatForm renders the create form, or the edit form of id when id is set.
func (h *Handlers) renderJenisObatForm(w http.ResponseWriter, r *http.Request, id string, form jenisobattpl.FormState, status int) {
	ctx := r.Context()
	base, token := custommw.BasePathFromContext(ctx), custommw.CSRFTokenFromContext(ctx)
	data, page := jenisobattpl.BuildCreatePageData(base, token, form), jenisobattpl.Create
	if id != "" {
		data, page = jenisobattpl.BuildEditPageData(base, token, id, form), jenisobattpl.Edit
	}
	if custommw.IsHTMXRequest(ctx) {
		render(w, r, jenisobattpl.Form(data), status)
		return
	}
	render(w, r, page(data), status)
}

func jenisObatQueryState(r *http.Request) jenisobattpl.QueryState {
	values := r.URL.Query()
	return jenisobattpl.QueryState{
		Search:     strings.TrimSpace(values.Get("q")),
		ActiveOnly: parseCheckbox(values.Get("aktif")),
	}
}
