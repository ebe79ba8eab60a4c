package qrcode

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	goqrcode "github.com/skip2/go-qrcode"
)

// DefaultImageSize is the PNG edge length in pixels.
const DefaultImageSize = 300

// GenerateBatchCode returns a code shaped BATCH-YYYYMMDDHHMMSS-XXXXXX. The suffix is
// taken from the random part of a ULID.
func GenerateBatchCode(now time.Time) string {
	id := ulid.Make().String()
	return fmt.Sprintf("BATCH-%s-%s", now.Format("20060102150405"), id[len(id)-6:])
}

// Payload is the JSON document encoded into a batch label.
type Payload struct {
	Code        string       `json:"kode_qr"`
	Medicine    PayloadItem  `json:"obat"`
	Batch       PayloadBatch `json:"batch"`
	GeneratedAt string       `json:"generated_at"`
}

// PayloadItem describes the medicine on the label.
type PayloadItem struct {
	Name string `json:"nama"`
}

// PayloadBatch describes the lot on the label.
type PayloadBatch struct {
	Number  string `json:"nomor"`
	Expires string `json:"expired"`
	Stock   int    `json:"stok"`
}

// NewPayload builds the label payload for b.
func NewPayload(b Batch, now time.Time) Payload {
	return Payload{
		Code:     b.Code,
		Medicine: PayloadItem{Name: b.MedicineName},
		Batch: PayloadBatch{
			Number:  b.Number,
			Expires: b.ExpiresOn.Format(DateLayout),
			Stock:   b.Stock,
		},
		GeneratedAt: now.UTC().Format(time.RFC3339),
	}
}

// PNG renders the batch payload as a QR code image.
func PNG(b Batch, now time.Time, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultImageSize
	}
	content, err := json.Marshal(NewPayload(b, now))
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}
	png, err := goqrcode.Encode(string(content), goqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}
	return png, nil
}
