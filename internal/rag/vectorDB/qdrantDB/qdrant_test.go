package qdrantDB

import (
	"strings"
	"testing"
)

func TestGenerationNamesNeverCollide(t *testing.T) {
	const base = "docchat-session-abc"

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		name := generationName(base)
		if !strings.HasPrefix(name, base+"-") {
			t.Fatalf("Expected generation name to extend %q, got %q", base, name)
		}
		if seen[name] {
			t.Fatalf("Generation name %q was issued twice", name)
		}
		seen[name] = true
	}
}

// A rebuild must not disturb the collection a live index reads from: the new
// generation only becomes live via swapLive, which Build calls after the last
// upsert succeeded. A failed build never swaps, so the prior collection stays.
func TestSwapLivePublishesOnlyCompletedGenerations(t *testing.T) {
	const base = "docchat-session-abc"
	b := &builder{live: make(map[string]string)}

	first := generationName(base)
	if superseded := b.swapLive(base, first); superseded != "" {
		t.Fatalf("Expected no superseded collection on first build, got %q", superseded)
	}

	// Failed rebuild: swapLive is not called, first is still serving.
	abandoned := generationName(base)
	if live := b.live[base]; live != first {
		t.Fatalf("Expected live collection %q after failed rebuild, got %q", first, live)
	}
	if abandoned == first {
		t.Fatalf("Abandoned generation reused the live collection name %q", first)
	}

	second := generationName(base)
	if superseded := b.swapLive(base, second); superseded != first {
		t.Fatalf("Expected %q to be superseded, got %q", first, superseded)
	}
	if live := b.live[base]; live != second {
		t.Fatalf("Expected live collection %q, got %q", second, live)
	}
}
