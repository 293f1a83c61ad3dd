//go:build !gocv

package lines

import (
	"context"
	"errors"
	"testing"
)

func TestHoughDetectorNotEnabled(t *testing.T) {

	ctx := context.Background()

	_, err := NewDetector(ctx, "hough://")

	if !errors.Is(err, ErrGoCVNotEnabled) {
		t.Fatalf("Expected ErrGoCVNotEnabled, got %v", err)
	}
}
