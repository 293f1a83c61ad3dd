//go:build !ocr

package ocr

import (
	"context"
)

func init() {

	ctx := context.Background()

	err := RegisterOCR(ctx, "tesseract", NewTesseractOCR)

	if err != nil {
		panic(err)
	}
}

// NewTesseractOCR returns ErrOCRNotEnabled. To enable Tesseract, rebuild with: go build -tags ocr
func NewTesseractOCR(ctx context.Context, uri string) (OCR, error) {
	return nil, ErrOCRNotEnabled
}
