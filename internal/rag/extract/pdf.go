package extract

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/dslipak/pdf"

	"github.com/akandula/DocChatAPI/internal/config"
)

func extractPDF(data []byte) ([]Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, Page{Number: i})
			continue
		}

		content, err := protectExtract(page)
		if err != nil {
			// a page the library chokes on is reported as text-less,
			// the remaining pages still get extracted
			pages = append(pages, Page{Number: i})
			continue
		}

		pages = append(pages, Page{Number: i, Content: content})
	}
	return pages, nil
}

// protectExtract runs the page extraction in its own goroutine because the
// pdf library can hang on malformed content streams.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(config.PageExtractTimeout):
		return "", errors.New("page extraction timeout")
	}
}
