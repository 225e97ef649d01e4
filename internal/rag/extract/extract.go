package extract

import (
	"path/filepath"
	"strings"

	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

// Result is the outcome of extracting one upload batch. Text is the combined
// blob the chunker consumes; Warnings and Errors are reported to the user but
// never abort the batch.
type Result struct {
	Text      string
	Documents int
	Warnings  []chatModel.PageWarning
	Errors    []chatModel.DocError
}

// Page is one extracted unit of a document: a PDF page or a DOCX paragraph.
type Page struct {
	Number  int
	Content string
}

// one extractor per supported media type; anything else is skipped silently
var extractors = map[chatModel.MediaType]func(data []byte) ([]Page, error){
	chatModel.MediaTypePDF:  extractPDF,
	chatModel.MediaTypeDOCX: extractDOCX,
}

// Register installs an extractor for a media type, replacing any existing
// one. Same convention as image.RegisterFormat; not safe for concurrent use
// with Batch.
func Register(mediaType chatModel.MediaType, fn func(data []byte) ([]Page, error)) {
	extractors[mediaType] = fn
}

// Batch extracts every supported upload in the order supplied. Each page or
// paragraph contributes its text terminated by a newline, and every processed
// document is followed by one extra newline. A document that cannot be read
// is recorded and the rest of the batch continues.
func Batch(uploads []chatModel.Upload, logger *logx.Logger) Result {
	var combined strings.Builder
	var res Result

	for _, up := range uploads {
		extractor, supported := extractors[up.MediaType]
		if !supported {
			logger.Debug("Skipping unsupported upload", "document", up.Name, "mediaType", string(up.MediaType))
			continue
		}

		pages, err := extractor(up.Data)
		if err != nil {
			logger.Error("Document extraction failed", "document", up.Name, "error", err)
			res.Errors = append(res.Errors, chatModel.DocError{Document: up.Name, Reason: err.Error()})
			continue
		}

		wrote := false
		for _, page := range pages {
			if strings.TrimSpace(page.Content) == "" {
				logger.Warn("No text extracted from page", "document", up.Name, "page", page.Number)
				res.Warnings = append(res.Warnings, chatModel.PageWarning{Document: up.Name, Page: page.Number})
				continue
			}
			combined.WriteString(page.Content)
			if !strings.HasSuffix(page.Content, "\n") {
				combined.WriteByte('\n')
			}
			wrote = true
		}
		if wrote {
			combined.WriteByte('\n')
		}
		res.Documents++
	}

	res.Text = combined.String()
	return res
}

// ResolveMediaType maps a declared content type, or failing that the filename
// extension, onto one of the supported media types.
func ResolveMediaType(declared string, filename string) (chatModel.MediaType, bool) {
	declared = strings.TrimSpace(strings.ToLower(declared))
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = declared[:i]
	}

	switch chatModel.MediaType(declared) {
	case chatModel.MediaTypePDF:
		return chatModel.MediaTypePDF, true
	case chatModel.MediaTypeDOCX:
		return chatModel.MediaTypeDOCX, true
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return chatModel.MediaTypePDF, true
	case ".docx":
		return chatModel.MediaTypeDOCX, true
	}
	return chatModel.MediaType(declared), false
}
