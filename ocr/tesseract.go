//go:build ocr

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// type TesseractOCR implements the `OCR` interface using the Tesseract engine. The underlying client
// is not safe for concurrent use so calls to Recognize are serialized.
type TesseractOCR struct {
	OCR
	client *gosseract.Client
	mu     *sync.Mutex
}

func init() {

	ctx := context.Background()

	err := RegisterOCR(ctx, "tesseract", NewTesseractOCR)

	if err != nil {
		panic(err)
	}
}

// NewTesseractOCR returns a new `TesseractOCR` instance. 'uri' takes the form of:
//
//	tesseract://?lang={LANGUAGES}&fast={BOOLEAN}
//
// Where 'lang' is a "+" separated list of Tesseract languages (default "eng") and 'fast' enables sparse
// text page segmentation, which is quicker and suited to the scattered labels of maps.
func NewTesseractOCR(ctx context.Context, uri string) (OCR, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	q := u.Query()

	lang := "eng"

	if q.Has("lang") {
		lang = q.Get("lang")
	}

	fast := false

	if q.Has("fast") {

		v, err := strconv.ParseBool(q.Get("fast"))

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?fast= parameter, %w", err)
		}

		fast = v
	}

	client := gosseract.NewClient()

	err = client.SetLanguage(strings.Split(lang, "+")...)

	if err != nil {
		client.Close()
		return nil, fmt.Errorf("Failed to set language, %w", err)
	}

	mode := gosseract.PSM_AUTO

	if fast {
		mode = gosseract.PSM_SPARSE_TEXT
	}

	err = client.SetPageSegMode(mode)

	if err != nil {
		client.Close()
		return nil, fmt.Errorf("Failed to set page segmentation mode, %w", err)
	}

	o := &TesseractOCR{
		client: client,
		mu:     new(sync.Mutex),
	}

	return o, nil
}

func (o *TesseractOCR) Recognize(ctx context.Context, im image.Image) ([]*Word, error) {

	var buf bytes.Buffer

	err := png.Encode(&buf, im)

	if err != nil {
		return nil, fmt.Errorf("Failed to encode image, %w", err)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	err = o.client.SetImageFromBytes(buf.Bytes())

	if err != nil {
		return nil, fmt.Errorf("Failed to set image, %w", err)
	}

	boxes, err := o.client.GetBoundingBoxes(gosseract.RIL_WORD)

	if err != nil {
		return nil, fmt.Errorf("OCR failed, %w", err)
	}

	offset := im.Bounds().Min
	words := make([]*Word, 0)

	for _, b := range boxes {

		text := strings.TrimSpace(b.Word)

		if text == "" {
			continue
		}

		w := &Word{
			Text:       text,
			Confidence: b.Confidence,
			Box:        b.Box.Add(offset),
		}

		words = append(words, w)
	}

	return words, nil
}

func (o *TesseractOCR) Close() error {

	if o.client != nil {
		return o.client.Close()
	}

	return nil
}
