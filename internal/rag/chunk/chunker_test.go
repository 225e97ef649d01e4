package chunk

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestSplit_EmptyAndWhitespaceInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n\n", " \n \t\n"} {
		if got := Split(input, 1000, 200); got != nil {
			t.Errorf("Split(%q) = %v; want nil", input, got)
		}
	}
}

func TestSplit_SmallTextSingleChunk(t *testing.T) {
	text := "Hello world.\nSecond page.\n\n"
	chunks := Split(text, 1000, 200)

	if len(chunks) != 1 {
		t.Fatalf("expected a single chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("chunk got %q, want %q", chunks[0], text)
	}
}

func TestSplit_Deterministic(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		fmt.Fprintf(&b, "line number %d with some filler text\n", i)
	}
	text := b.String()

	first := Split(text, 200, 50)
	second := Split(text, 200, 50)

	if !reflect.DeepEqual(first, second) {
		t.Error("identical input and parameters produced different chunk sequences")
	}
	if len(first) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(first))
	}
}

func TestSplit_RespectsSizeOnNewlineUnits(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&b, "unit-%02d abcdefghij\n", i)
	}

	for _, c := range Split(b.String(), 100, 20) {
		if len(c) > 100 {
			t.Errorf("chunk of %d chars exceeds size budget: %q", len(c), c)
		}
	}
}

func TestSplit_OversizedUnitKeptWhole(t *testing.T) {
	long := strings.Repeat("x", 500)
	text := "short\n" + long + "\nalso short"

	chunks := Split(text, 100, 20)

	found := false
	for _, c := range chunks {
		if strings.Contains(c, long) {
			found = true
		}
	}
	if !found {
		t.Error("oversized unit was dropped instead of emitted as an oversized chunk")
	}
}

func TestSplit_OverlapIsSuffixOfPreviousChunk(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "sentence %02d padding padding\n", i)
	}

	chunks := Split(b.String(), 120, 40)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		firstUnit := strings.SplitN(chunks[i], "\n", 2)[0]
		if !strings.HasSuffix(chunks[i-1], firstUnit) {
			t.Errorf("chunk %d does not start with an overlap from chunk %d: %q / %q",
				i, i-1, chunks[i-1], chunks[i])
		}
	}
}

// Stitching the chunks back together while deduplicating the overlap region
// must reproduce the source text.
func TestSplit_Reconstruction(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "unique line %02d of the source document\n", i)
	}
	text := strings.TrimRight(b.String(), "\n")

	chunks := Split(text, 150, 60)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	rebuilt := chunks[0]
	for i := 1; i < len(chunks); i++ {
		units := strings.Split(chunks[i], "\n")
		skip := 0
		for j := len(units); j > 0; j-- {
			if strings.HasSuffix(rebuilt, strings.Join(units[:j], "\n")) {
				skip = j
				break
			}
		}
		rest := strings.Join(units[skip:], "\n")
		if rest != "" {
			rebuilt += "\n" + rest
		}
	}

	if rebuilt != text {
		t.Errorf("reconstruction mismatch:\n got %q\nwant %q", rebuilt, text)
	}
}

func TestChunks_PositionalIdentifiers(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "line %02d with some content\n", i)
	}

	chunks := Chunks(b.String(), 120, 40)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if want := fmt.Sprintf("chunk-%d", i); c.ID != want {
			t.Errorf("chunk %d has id %q, want %q", i, c.ID, want)
		}
		if c.Text == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestChunks_SingleEntry(t *testing.T) {
	chunks := Chunks("Hello world.\nSecond page.\n\n", 1000, 200)
	if len(chunks) != 1 || chunks[0].ID != "chunk-0" {
		t.Fatalf("expected exactly chunk-0, got %+v", chunks)
	}
}
