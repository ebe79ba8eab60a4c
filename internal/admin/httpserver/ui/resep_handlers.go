package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	custommw "finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	adminresep "finitefield.org/apotek-admin/internal/admin/resep"
	reseptpl "finitefield.org/apotek-admin/internal/admin/templates/resep"
	"finitefield.org/apotek-admin/internal/platform/observability"
)

const resepLoadError = "Data resep gagal dimuat. Coba lagi beberapa saat."

// ResepPage renders the prescription list.
func (h *Handlers) ResepPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := resepQueryState(r)

	prescriptions, err := h.resep.List(ctx, resepQuery(state))
	errMsg := ""
	if err != nil {
		observability.FromContext(ctx).Error("resep: list failed", zap.Error(err))
		errMsg = resepLoadError
		prescriptions = nil
	}

	data := reseptpl.BuildPageData(custommw.BasePathFromContext(ctx), state, prescriptions, errMsg)
	render(w, r, reseptpl.Index(data), http.StatusOK)
}

// ResepTable renders the table fragment for htmx search swaps.
func (h *Handlers) ResepTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	state := resepQueryState(r)

	prescriptions, err := h.resep.List(ctx, resepQuery(state))
	errMsg := ""
	if err != nil {
		observability.FromContext(ctx).Error("resep: list fragment failed", zap.Error(err))
		errMsg = resepLoadError
		prescriptions = nil
	}

	pushURL(w, r, "/resep")
	render(w, r, reseptpl.Table(reseptpl.TablePayload(state, prescriptions, errMsg)), http.StatusOK)
}

// ResepCreateForm renders the create form dated today.
func (h *Handlers) ResepCreateForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := reseptpl.BuildCreatePageData(custommw.BasePathFromContext(ctx), custommw.CSRFTokenFromContext(ctx), reseptpl.DefaultForm(h.now()))
	render(w, r, reseptpl.Create(data), http.StatusOK)
}

// ResepCreate stores a new pending prescription. A blank number is generated.
func (h *Handlers) ResepCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form := reseptpl.DefaultForm(h.now())
	if err := r.ParseForm(); err != nil {
		form.Error = invalidFormMessage
		h.renderResepForm(w, r, form, http.StatusBadRequest)
		return
	}

	form = reseptpl.FormState{
		Number:          r.PostFormValue("nomor_resep"),
		MedicalRecordNo: r.PostFormValue("nomor_rm"),
		PatientName:     r.PostFormValue("nama_pasien"),
		DoctorName:      r.PostFormValue("nama_dokter"),
		Date:            r.PostFormValue("tanggal_resep"),
		PatientType:     r.PostFormValue("jenis_pasien"),
		Payment:         r.PostFormValue("cara_bayar"),
		Notes:           r.PostFormValue("catatan"),
	}

	created, err := h.resep.Create(ctx, adminresep.CreateRequest{
		Number:          form.Number,
		MedicalRecordNo: form.MedicalRecordNo,
		PatientName:     form.PatientName,
		DoctorName:      form.DoctorName,
		Date:            form.Date,
		PatientType:     adminresep.PatientType(strings.TrimSpace(form.PatientType)),
		Payment:         adminresep.Payment(strings.TrimSpace(form.Payment)),
		Notes:           form.Notes,
	})
	if err != nil {
		outcome := saveFailure(ctx, "resep", err, adminresep.ErrDuplicateNumber, adminresep.DuplicateFieldError())
		form.Errors = outcome.fields
		form.Error = outcome.message
		h.renderResepForm(w, r, form, outcome.status)
		return
	}

	observability.FromContext(ctx).Info("resep created", zap.String("id", created.ID), zap.String("number", created.Number))
	redirectWithFlash(w, r, listPath(r, "/resep"), "Resep "+created.Number+" berhasil ditambahkan.")
}

// ResepShow renders the prescription detail page.
func (h *Handlers) ResepShow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.resep.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		lookupFailed(w, r, "resep", err, adminresep.ErrNotFound)
		return
	}
	render(w, r, reseptpl.Show(reseptpl.BuildShowPageData(custommw.BasePathFromContext(ctx), p)), http.StatusOK)
}

// ResepTransition returns the handler that applies action and returns to the
// detail page. A status that does not allow action is reported as a warning toast.
func (h *Handlers) ResepTransition(action adminresep.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")
		req := adminresep.TransitionRequest{Action: action}
		if user, ok := custommw.UserFromContext(ctx); ok {
			req.By = firstNonEmpty(user.Email, user.UID)
		}

		p, err := h.resep.Transition(ctx, id, req)
		detail := listPath(r, "/resep/"+id)
		switch {
		case errors.Is(err, adminresep.ErrNotFound):
			http.NotFound(w, r)
			return
		case errors.Is(err, adminresep.ErrInvalidTransition):
			observability.FromContext(ctx).Warn("resep: transition refused",
				zap.String("id", id), zap.String("action", string(action)), zap.String("status", string(p.Status)))
			redirectWithToast(w, r, detail, "Resep berstatus "+p.Status.Label()+" tidak dapat diubah dengan aksi ini.", "warning")
			return
		case err != nil:
			observability.FromContext(ctx).Error("resep: transition failed", zap.String("id", id), zap.Error(err))
			redirectWithToast(w, r, detail, "Status resep gagal diperbarui. Coba lagi beberapa saat.", "danger")
			return
		}

		observability.FromContext(ctx).Info("resep status changed",
			zap.String("id", p.ID), zap.String("action", string(action)), zap.String("status", string(p.Status)))
		redirectWithFlash(w, r, detail, "Resep "+p.Number+": "+action.Message())
	}
}

func (h *Handlers) renderResepForm(w http.ResponseWriter, r *http.Request, form reseptpl.FormState, status int) {
	ctx := r.Context()
	data := reseptpl.BuildCreatePageData(custommw.BasePathFromContext(ctx), custommw.CSRFTokenFromContext(ctx), form)
	if custommw.IsHTMXRequest(ctx) {
		render(w, r, reseptpl.Form(data), status)
		return
	}
	render(w, r, reseptpl.Create(data), status)
}

func resepQueryState(r *http.Request) reseptpl.QueryState {
	values := r.URL.Query()
	state := reseptpl.QueryState{Search: strings.TrimSpace(values.Get("q"))}
	wanted := adminresep.Status(strings.TrimSpace(values.Get("status")))
	for _, s := range adminresep.Statuses() {
		if s == wanted {
			state.Status = string(s)
		}
	}
	return state
}

func resepQuery(state reseptpl.QueryState) adminresep.Query {
	return adminresep.Query{Search: state.Search, Status: adminresep.Status(state.Status)}
}
