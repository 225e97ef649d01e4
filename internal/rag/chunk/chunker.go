package chunk

import (
	"fmt"
	"strings"

	"github.com/akandula/DocChatAPI/internal/domain/chatModel"
)

// Split cuts text into windows of at most size characters with roughly
// overlap characters shared between neighbours. The text is treated as a
// sequence of newline-separated units; units are merged greedily and never
// cut in half. A single unit longer than size is still emitted as its own
// oversized chunk - losing text is worse than busting the budget.
//
// Whitespace-only input yields no chunks. The output is fully determined by
// the input and the two parameters.
func Split(text string, size int, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if size <= 0 {
		size = 1
	}
	if overlap < 0 {
		overlap = 0
	}

	units := strings.Split(text, "\n")

	var chunks []string
	var current []string
	currentLen := 0

	flush := func() {
		joined := strings.Join(current, "\n")
		if strings.TrimSpace(joined) != "" {
			chunks = append(chunks, joined)
		}
	}

	for _, unit := range units {
		added := len(unit)
		if currentLen > 0 {
			added++ //the separator we re-insert on join
		}

		if currentLen > 0 && currentLen+added > size {
			flush()
			current = tailUnits(current, overlap)
			currentLen = joinedLen(current)
			if currentLen > 0 {
				added = len(unit) + 1
			} else {
				added = len(unit)
			}
		}

		current = append(current, unit)
		currentLen += added
	}

	if currentLen > 0 {
		flush()
	}

	return chunks
}

// Chunks wraps Split, attaching the positional "chunk-<i>" identifiers the
// index and the source attributions use.
func Chunks(text string, size int, overlap int) []chatModel.Chunk {
	parts := Split(text, size, overlap)
	out := make([]chatModel.Chunk, 0, len(parts))
	for i, part := range parts {
		out = append(out, chatModel.Chunk{
			ID:   fmt.Sprintf("chunk-%d", i),
			Text: part,
		})
	}
	return out
}

// tailUnits returns the longest suffix of units whose joined length stays
// within budget. Whole units only, so the overlap region of the next chunk
// is always a clean prefix.
func tailUnits(units []string, budget int) []string {
	if budget <= 0 || len(units) == 0 {
		return nil
	}
	total := 0
	start := len(units)
	for i := len(units) - 1; i >= 0; i-- {
		add := len(units[i])
		if total > 0 {
			add++
		}
		if total+add > budget {
			break
		}
		total += add
		start = i
	}
	if start == len(units) {
		return nil
	}
	tail := make([]string, len(units)-start)
	copy(tail, units[start:])
	return tail
}

func joinedLen(units []string) int {
	if len(units) == 0 {
		return 0
	}
	total := len(units) - 1
	for _, u := range units {
		total += len(u)
	}
	return total
}
