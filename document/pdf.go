package document

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var re_abstract = regexp.MustCompile(`(?i)^\s*abstract\b\s*[:.\-]?\s*`)

var re_section = regexp.MustCompile(`(?i)^\s*(?:\d+\.?\s*)?(?:introduction|keywords|key words|background)\b`)

// ReadPDF returns a `Document` whose title and abstract are derived from the text of the first page of
// the PDF file in 'r'. PDF files do not yield figures.
func ReadPDF(r io.ReaderAt, size int64) (*Document, error) {

	reader, err := pdf.NewReader(r, size)

	if err != nil {
		return nil, fmt.Errorf("Failed to create PDF reader, %w", err)
	}

	if reader.NumPage() < 1 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	page := reader.Page(1)

	if page.V.IsNull() {
		return nil, fmt.Errorf("PDF first page is empty")
	}

	text, err := page.GetPlainText(nil)

	if err != nil {
		return nil, fmt.Errorf("Failed to read text, %w", err)
	}

	title, abstract := TitleAndAbstract(text)

	doc := &Document{
		Title:    title,
		Abstract: abstract,
		Figures:  make([]*Figure, 0),
	}

	return doc, nil
}

// TitleAndAbstract returns the first non-empty line of 'text' as the title and the text following an
// "Abstract" heading, up to the next section heading, as the abstract.
func TitleAndAbstract(text string) (string, string) {

	title := ""
	abstract := make([]string, 0)
	in_abstract := false

	for _, ln := range strings.Split(text, "\n") {

		ln = strings.TrimSpace(ln)

		if ln == "" {
			continue
		}

		if title == "" {
			title = ln
			continue
		}

		if !in_abstract {

			if re_abstract.MatchString(ln) {

				in_abstract = true
				rest := re_abstract.ReplaceAllString(ln, "")

				if rest != "" {
					abstract = append(abstract, rest)
				}
			}

			continue
		}

		if re_section.MatchString(ln) {
			break
		}

		abstract = append(abstract, ln)
	}

	return title, strings.Join(abstract, " ")
}
