//go:build !ocr

package ocr

import (
	"context"
	"errors"
	"testing"
)

func TestTesseractNotEnabled(t *testing.T) {

	ctx := context.Background()

	o, err := NewOCR(ctx, "tesseract://?fast=true")

	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Fatalf("Expected ErrOCRNotEnabled, got %v", err)
	}

	if o != nil {
		t.Fatalf("Expected nil OCR when OCR is disabled")
	}
}
