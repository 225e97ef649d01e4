package extract

import (
	"errors"
	"testing"

	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
	"github.com/akandula/DocChatAPI/pkg/logx"
)

func stubPDFExtractor(t *testing.T, fn func(data []byte) ([]Page, error)) {
	t.Helper()
	orig := extractors[chatModel.MediaTypePDF]
	extractors[chatModel.MediaTypePDF] = fn
	t.Cleanup(func() { extractors[chatModel.MediaTypePDF] = orig })
}

func TestBatch_CombinesPagesInOrder(t *testing.T) {
	stubPDFExtractor(t, func(data []byte) ([]Page, error) {
		return []Page{
			{Number: 1, Content: "Hello world.\n"},
			{Number: 2, Content: "Second page.\n"},
		}, nil
	})

	res := Batch([]chatModel.Upload{
		{Name: "doc.pdf", MediaType: chatModel.MediaTypePDF, Data: []byte("x")},
	}, logx.NewLogger("test"))

	want := "Hello world.\nSecond page.\n\n"
	if res.Text != want {
		t.Errorf("combined text got %q, want %q", res.Text, want)
	}
	if len(res.Warnings) != 0 || len(res.Errors) != 0 {
		t.Errorf("unexpected warnings/errors: %v %v", res.Warnings, res.Errors)
	}
}

func TestBatch_BadDocumentDoesNotAbortOthers(t *testing.T) {
	stubPDFExtractor(t, func(data []byte) ([]Page, error) {
		if string(data) == "bad" {
			return nil, errors.New("corrupt file")
		}
		return []Page{{Number: 1, Content: string(data)}}, nil
	})

	uploads := []chatModel.Upload{
		{Name: "first.pdf", MediaType: chatModel.MediaTypePDF, Data: []byte("first")},
		{Name: "broken.pdf", MediaType: chatModel.MediaTypePDF, Data: []byte("bad")},
		{Name: "second.pdf", MediaType: chatModel.MediaTypePDF, Data: []byte("second")},
	}

	res := Batch(uploads, logx.NewLogger("test"))

	want := "first\n\nsecond\n\n"
	if res.Text != want {
		t.Errorf("combined text got %q, want %q", res.Text, want)
	}
	if len(res.Errors) != 1 || res.Errors[0].Document != "broken.pdf" {
		t.Errorf("expected one error for broken.pdf, got %v", res.Errors)
	}

	// same batch without the broken document yields the same text
	res2 := Batch([]chatModel.Upload{uploads[0], uploads[2]}, logx.NewLogger("test"))
	if res2.Text != res.Text {
		t.Errorf("bad document altered extraction of the others: %q vs %q", res2.Text, res.Text)
	}
}

func TestBatch_TextlessPageWarning(t *testing.T) {
	stubPDFExtractor(t, func(data []byte) ([]Page, error) {
		return []Page{
			{Number: 1, Content: "page one\n"},
			{Number: 2, Content: "   "},
			{Number: 3, Content: "page three\n"},
		}, nil
	})

	res := Batch([]chatModel.Upload{
		{Name: "scan.pdf", MediaType: chatModel.MediaTypePDF, Data: []byte("x")},
	}, logx.NewLogger("test"))

	if res.Text != "page one\npage three\n\n" {
		t.Errorf("combined text got %q", res.Text)
	}
	if len(res.Warnings) != 1 || res.Warnings[0].Page != 2 || res.Warnings[0].Document != "scan.pdf" {
		t.Errorf("expected warning for page 2 of scan.pdf, got %v", res.Warnings)
	}
}

func TestBatch_UnsupportedTypeSilentlySkipped(t *testing.T) {
	res := Batch([]chatModel.Upload{
		{Name: "notes.txt", MediaType: chatModel.MediaType("text/plain"), Data: []byte("plain text")},
	}, logx.NewLogger("test"))

	if res.Text != "" || len(res.Warnings) != 0 || len(res.Errors) != 0 {
		t.Errorf("unsupported upload should contribute nothing, got %+v", res)
	}
	if res.Documents != 0 {
		t.Errorf("unsupported upload counted as processed document")
	}
}

func TestBatch_CorruptPDFBytes(t *testing.T) {
	res := Batch([]chatModel.Upload{
		{Name: "garbage.pdf", MediaType: chatModel.MediaTypePDF, Data: []byte("definitely not a pdf")},
	}, logx.NewLogger("test"))

	if len(res.Errors) != 1 {
		t.Fatalf("expected one document error, got %v", res.Errors)
	}
	if res.Text != "" {
		t.Errorf("corrupt document should contribute no text, got %q", res.Text)
	}
}

func TestResolveMediaType(t *testing.T) {
	tests := []struct {
		declared  string
		filename  string
		want      chatModel.MediaType
		supported bool
	}{
		{"application/pdf", "report.pdf", chatModel.MediaTypePDF, true},
		{"application/pdf; charset=binary", "report.pdf", chatModel.MediaTypePDF, true},
		{string(chatModel.MediaTypeDOCX), "notes.docx", chatModel.MediaTypeDOCX, true},
		{"application/octet-stream", "report.PDF", chatModel.MediaTypePDF, true},
		{"application/octet-stream", "notes.docx", chatModel.MediaTypeDOCX, true},
		{"text/plain", "notes.txt", chatModel.MediaType("text/plain"), false},
	}

	for _, tt := range tests {
		got, ok := ResolveMediaType(tt.declared, tt.filename)
		if ok != tt.supported || (ok && got != tt.want) {
			t.Errorf("ResolveMediaType(%q, %q) = (%v, %v); want (%v, %v)",
				tt.declared, tt.filename, got, ok, tt.want, tt.supported)
		}
	}
}
