package qrcode

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"finitefield.org/apotek-admin/internal/admin/validation"
)

var batchCodePattern = regexp.MustCompile(`^BATCH-\d{14}-[0-9A-Z]{6}$`)

func fixedNow() time.Time {
	return time.Date(2025, 12, 17, 10, 0, 0, 0, time.UTC)
}

func newTestService() *StaticService {
	return NewStaticService([]Batch{
		{Code: "BATCH-OK", Number: "PCT-1", MedicineName: "Paracetamol", ExpiresOn: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Stock: 100},
		{Code: "BATCH-TOMORROW", Number: "CTM-1", MedicineName: "CTM", ExpiresOn: time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC), Stock: 8},
		{Code: "BATCH-TODAY", Number: "AMX-1", MedicineName: "Amoxicillin", ExpiresOn: time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC), Stock: 5},
		{Code: "BATCH-OLD", Number: "OBH-1", MedicineName: "OBH", ExpiresOn: time.Date(2025, 12, 16, 0, 0, 0, 0, time.UTC), Stock: 1},
	}, nil).WithClock(fixedNow)
}

func TestGenerateBatchCodeFormat(t *testing.T) {
	t.Parallel()

	code := GenerateBatchCode(fixedNow())
	require.Regexp(t, batchCodePattern, code)
	require.Equal(t, "BATCH-20251217100000-", code[:21])
	require.NotEqual(t, code, GenerateBatchCode(fixedNow()))
}

func TestScanOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    string
		want    Result
		wantErr error
	}{
		{name: "valid batch", code: "BATCH-OK", want: ResultSuccess},
		{name: "expires tomorrow still usable", code: "BATCH-TOMORROW", want: ResultSuccess},
		{name: "expires today", code: "BATCH-TODAY", want: ResultExpired, wantErr: ErrBatchExpired},
		{name: "expired yesterday", code: "BATCH-OLD", want: ResultExpired, wantErr: ErrBatchExpired},
		{name: "unknown code", code: "BATCH-NOPE", want: ResultNotFound, wantErr: ErrBatchNotFound},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := newTestService()
			res, err := svc.Scan(context.Background(), ScanRequest{Code: " " + tc.code + " ", ScannedBy: "apoteker-1", RemoteIP: "10.0.0.2"})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.want, res.Result)
			require.Equal(t, tc.want.Message(), res.Message)
			require.Equal(t, tc.want == ResultNotFound, res.Batch == nil)

			logs, err := svc.Logs(context.Background(), LogQuery{})
			require.NoError(t, err)
			require.Len(t, logs, 1, "every scan is logged")
			require.Equal(t, tc.want, logs[0].Result)
			require.Equal(t, tc.code, logs[0].Code)
			require.Equal(t, MethodCamera, logs[0].Method)
			require.Equal(t, "apoteker-1", logs[0].ScannedBy)
			require.Equal(t, "10.0.0.2", logs[0].RemoteIP)
		})
	}
}

func TestScanValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	_, err := svc.Scan(context.Background(), ScanRequest{Code: "", Method: Method("nfc")})
	fe, ok := validation.FieldErrors(err)
	require.True(t, ok)
	require.Contains(t, fe, "kode_qr")
	require.Contains(t, fe, "metode")

	logs, err := svc.Logs(context.Background(), LogQuery{})
	require.NoError(t, err)
	require.Empty(t, logs, "invalid input is rejected before lookup")
}

func TestLogsFilterAndLimit(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	now := fixedNow()
	svc.WithClock(func() time.Time { return now })
	for i := 0; i < 20; i++ {
		now = now.Add(time.Minute)
		code := "BATCH-OK"
		if i%2 == 1 {
			code = "BATCH-NOPE"
		}
		_, _ = svc.Scan(context.Background(), ScanRequest{Code: code, Method: MethodScanner})
	}

	logs, err := svc.Logs(context.Background(), LogQuery{})
	require.NoError(t, err)
	require.Len(t, logs, DefaultLogLimit)
	require.True(t, logs[0].ScannedAt.After(logs[1].ScannedAt), "newest first")

	failed, err := svc.Logs(context.Background(), LogQuery{Result: ResultNotFound, Limit: -1})
	require.NoError(t, err)
	require.Len(t, failed, 10)

	recent, err := svc.Logs(context.Background(), LogQuery{Since: fixedNow().Add(16 * time.Minute), Limit: -1})
	require.NoError(t, err)
	require.Len(t, recent, 5)
}

func TestBatchesSortedByExpiry(t *testing.T) {
	t.Parallel()

	batches, err := newTestService().Batches(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"BATCH-OLD", "BATCH-TODAY", "BATCH-TOMORROW", "BATCH-OK"},
		[]string{batches[0].Code, batches[1].Code, batches[2].Code, batches[3].Code})
	require.NotEmpty(t, batches[0].ID)

	_, err = newTestService().Batch(context.Background(), "missing")
	require.ErrorIs(t, err, ErrBatchNotFound)
}

func TestExpiringSoon(t *testing.T) {
	t.Parallel()

	now := fixedNow()
	soon := Batch{ExpiresOn: now.AddDate(0, 0, 10)}
	later := Batch{ExpiresOn: now.AddDate(0, 3, 0)}
	gone := Batch{ExpiresOn: now.AddDate(0, 0, -1)}
	today := Batch{ExpiresOn: time.Date(2025, 12, 17, 0, 0, 0, 0, time.UTC)}
	tomorrow := Batch{ExpiresOn: time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC)}

	require.True(t, soon.ExpiringSoon(now, 30))
	require.False(t, later.ExpiringSoon(now, 30))
	require.False(t, gone.ExpiringSoon(now, 30))
	require.True(t, gone.Expired(now))
	require.True(t, today.Expired(now))
	require.False(t, today.ExpiringSoon(now, 30))
	require.False(t, tomorrow.Expired(now))
	require.True(t, tomorrow.ExpiringSoon(now, 1))
}

func TestPNGEncodesPayload(t *testing.T) {
	t.Parallel()

	b := Batch{Code: "BATCH-20251217100000-ABC123", Number: "PCT-1", MedicineName: "Paracetamol", ExpiresOn: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), Stock: 100}

	payload, err := json.Marshal(NewPayload(b, fixedNow()))
	require.NoError(t, err)
	require.JSONEq(t, `{"kode_qr":"BATCH-20251217100000-ABC123","obat":{"nama":"Paracetamol"},"batch":{"nomor":"PCT-1","expired":"2026-06-01","stok":100},"generated_at":"2025-12-17T10:00:00Z"}`, string(payload))

	data, err := PNG(b, fixedNow(), 0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, DefaultImageSize, img.Bounds().Dx())
}
