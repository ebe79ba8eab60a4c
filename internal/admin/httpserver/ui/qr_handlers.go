package ui

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	custommw "finitefield.org/apotek-admin/internal/admin/httpserver/middleware"
	adminqr "finitefield.org/apotek-admin/internal/admin/qrcode"
	qrtpl "finitefield.org/apotek-admin/internal/admin/templates/qr"
	"finitefield.org/apotek-admin/internal/admin/validation"
	"finitefield.org/apotek-admin/internal/platform/observability"
)

const (
	batchLoadError = "Data batch obat gagal dimuat. Coba lagi beberapa saat."
	logLoadError   = "Riwayat scan gagal dimuat."
)

// QRPage renders batch labels, the scanner and the scan history.
func (h *Handlers) QRPage(w http.ResponseWriter, r *http.Request) {
	data := h.buildQRPage(r)
	render(w, r, qrtpl.Index(data), http.StatusOK)
}

// QRLogs renders the scan history fragment filtered by result.
func (h *Handlers) QRLogs(w http.ResponseWriter, r *http.Request) {
	render(w, r, qrtpl.LogTable(h.logTable(r)), http.StatusOK)
}

// QRScan resolves a scanned code. htmx requests get the scanner fragment with
// the outcome; plain form posts are redirected back with a toast.
func (h *Handlers) QRScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)
	basePath := custommw.BasePathFromContext(ctx)
	csrf := custommw.CSRFTokenFromContext(ctx)

	if err := r.ParseForm(); err != nil {
		http.Error(w, invalidFormMessage, http.StatusBadRequest)
		return
	}

	req := adminqr.ScanRequest{
		Code:     r.PostFormValue("kode_qr"),
		Method:   adminqr.Method(strings.TrimSpace(r.PostFormValue("metode"))),
		RemoteIP: clientIP(r),
	}
	if user, ok := custommw.UserFromContext(ctx); ok {
		req.ScannedBy = firstNonEmpty(user.Email, user.UID)
	}
	req = req.Normalise()

	res, err := h.qr.Scan(ctx, req)
	if fields, ok := validation.FieldErrors(err); ok {
		fieldError := firstNonEmpty(fields["kode_qr"], fields["metode"])
		scanner := qrtpl.BuildScannerData(basePath, csrf, req.Code, nil, fieldError)
		if custommw.IsHTMXRequest(ctx) {
			render(w, r, qrtpl.Scanner(scanner), http.StatusUnprocessableEntity)
			return
		}
		data := h.buildQRPage(r)
		data.Scanner = scanner
		render(w, r, qrtpl.Index(data), http.StatusUnprocessableEntity)
		return
	}
	if err != nil && !errors.Is(err, adminqr.ErrBatchNotFound) && !errors.Is(err, adminqr.ErrBatchExpired) {
		logger.Error("qr: scan failed", zap.String("code", req.Code), zap.Error(err))
		res = adminqr.ScanResult{
			Result:  adminqr.ResultError,
			Message: adminqr.ResultError.Message(),
			Log:     adminqr.ScanLog{Code: req.Code},
		}
	}
	logger.Info("qr scanned", zap.String("code", req.Code), zap.String("result", string(res.Result)))

	if !custommw.IsHTMXRequest(ctx) {
		if sess, ok := custommw.SessionFromContext(ctx); ok {
			sess.AddFlash(res.Message, res.Result.Tone())
		}
		http.Redirect(w, r, listPath(r, "/qr"), http.StatusSeeOther)
		return
	}

	triggerEvents(w, r, map[string]any{
		"qr:scanned": map[string]string{"result": string(res.Result)},
		"toast":      map[string]string{"message": res.Message, "tone": res.Result.Tone()},
	})
	render(w, r, qrtpl.Scanner(qrtpl.BuildScannerData(basePath, csrf, "", qrtpl.ResultPayload(res), "")), http.StatusOK)
}

// QRBatchImage serves the PNG label of a batch.
func (h *Handlers) QRBatchImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := strings.TrimSpace(chi.URLParam(r, "kode"))

	batch, err := h.qr.Batch(ctx, code)
	if err != nil {
		if errors.Is(err, adminqr.ErrBatchNotFound) {
			http.NotFound(w, r)
			return
		}
		observability.FromContext(ctx).Error("qr: load batch failed", zap.String("code", code), zap.Error(err))
		http.Error(w, "QR code gagal dibuat.", http.StatusInternalServerError)
		return
	}

	png, err := adminqr.PNG(batch, h.now(), adminqr.DefaultImageSize)
	if err != nil {
		observability.FromContext(ctx).Error("qr: render png failed", zap.String("code", code), zap.Error(err))
		http.Error(w, "QR code gagal dibuat.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *Handlers) buildQRPage(r *http.Request) qrtpl.PageData {
	ctx := r.Context()

	batches, err := h.qr.Batches(ctx)
	errMsg := ""
	if err != nil {
		observability.FromContext(ctx).Error("qr: list batches failed", zap.Error(err))
		errMsg = batchLoadError
		batches = nil
	}

	return qrtpl.BuildPageData(
		custommw.BasePathFromContext(ctx),
		custommw.CSRFTokenFromContext(ctx),
		batches,
		h.logTable(r),
		errMsg,
		h.now(),
	)
}

func (h *Handlers) logTable(r *http.Request) qrtpl.LogTableData {
	ctx := r.Context()
	filter := logFilter(r)

	logs, err := h.qr.Logs(ctx, adminqr.LogQuery{Result: filter})
	errMsg := ""
	if err != nil {
		observability.FromContext(ctx).Error("qr: list logs failed", zap.Error(err))
		errMsg = logLoadError
		logs = nil
	}
	return qrtpl.LogTablePayload(custommw.BasePathFromContext(ctx), filter, logs, errMsg)
}

func logFilter(r *http.Request) adminqr.Result {
	wanted := adminqr.Result(strings.TrimSpace(r.URL.Query().Get("hasil")))
	for _, res := range adminqr.Results() {
		if res == wanted {
			return res
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
