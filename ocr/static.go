package ocr

import (
	"context"
	"image"
	"sync"
)

// type StaticOCR implements the `OCR` interface returning a fixed list of words, clipped to the bounds
// of the image being recognized.
type StaticOCR struct {
	OCR
	words []*Word
	mu    *sync.RWMutex
}

func init() {

	ctx := context.Background()

	err := RegisterOCR(ctx, "static", NewStaticOCR)

	if err != nil {
		panic(err)
	}
}

// NewStaticOCR returns a new `StaticOCR` instance with no words. 'uri' takes the form of:
//
//	static://
func NewStaticOCR(ctx context.Context, uri string) (OCR, error) {

	o := &StaticOCR{
		words: make([]*Word, 0),
		mu:    new(sync.RWMutex),
	}

	return o, nil
}

// SetWords replaces the words returned by 'o'.
func (o *StaticOCR) SetWords(words ...*Word) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.words = words
}

func (o *StaticOCR) Recognize(ctx context.Context, im image.Image) ([]*Word, error) {

	o.mu.RLock()
	defer o.mu.RUnlock()

	b := im.Bounds()
	words := make([]*Word, 0)

	for _, w := range o.words {

		if !w.Box.In(b) {
			continue
		}

		words = append(words, w)
	}

	return words, nil
}

func (o *StaticOCR) Close() error {
	return nil
}
