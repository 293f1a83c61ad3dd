//go:build !gocv

package lines

import (
	"context"
)

func init() {

	ctx := context.Background()

	err := RegisterDetector(ctx, "hough", NewHoughDetector)

	if err != nil {
		panic(err)
	}
}

// NewHoughDetector returns ErrGoCVNotEnabled. Rebuild with the "gocv" tag to enable OpenCV line detection.
func NewHoughDetector(ctx context.Context, uri string) (Detector, error) {
	return nil, ErrGoCVNotEnabled
}
