package ingest

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace",
			input: "Article 1.\n\n\tEvery   worker",
			want:  "Article 1. Every worker",
		},
		{
			name:  "strips page markers",
			input: "rights of workers Page 3 of 12 continue here",
			want:  "rights of workers continue here",
		},
		{
			name:  "keeps arabic text",
			input: "نظام العمل Article 1",
			want:  "نظام العمل Article 1",
		},
		{
			name:  "trims edges",
			input: "   hello world   ",
			want:  "hello world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.input); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitChunksShortTextDropped(t *testing.T) {
	if chunks := SplitChunks("too short", DefaultChunkSize, DefaultChunkOverlap); chunks != nil {
		t.Errorf("fragments under the minimum length should be dropped, got %v", chunks)
	}
}

func TestSplitChunksSingleChunk(t *testing.T) {
	text := strings.Repeat("every worker is entitled to rest. ", 10)
	chunks := SplitChunks(text, DefaultChunkSize, DefaultChunkOverlap)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
}

func TestSplitChunksOverlapAndBoundaries(t *testing.T) {
	sentence := "The employer shall provide safe working conditions for all employees. "
	text := strings.Repeat(sentence, 60) // well past one chunk

	chunks := SplitChunks(text, DefaultChunkSize, DefaultChunkOverlap)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if len([]rune(chunk)) > DefaultChunkSize {
			t.Errorf("chunk %d exceeds the size limit: %d runes", i, len([]rune(chunk)))
		}
		// Every boundary should land on a sentence ending
		if i < len(chunks)-1 && !strings.HasSuffix(chunk, ".") {
			t.Errorf("chunk %d does not end on a sentence boundary: %q", i, chunk[len(chunk)-20:])
		}
	}

	// Adjacent chunks share overlapping text
	tail := chunks[0][len(chunks[0])-50:]
	if !strings.Contains(chunks[1], tail[:20]) {
		t.Error("adjacent chunks do not overlap")
	}
}

func TestSplitChunksLargeOverlapStillAdvances(t *testing.T) {
	// An early sentence boundary pulls the cut back before chunkSize;
	// with a large overlap the next start must not run backwards.
	text := strings.Repeat("a", 500) + ". " + strings.Repeat("b", 3000)

	chunks := SplitChunks(text, 1000, 800)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}

	total := 0
	for _, chunk := range chunks {
		total += len([]rune(chunk))
	}
	if total < len([]rune(text))-800 {
		t.Errorf("chunks cover too little of the input: %d of %d runes", total, len([]rune(text)))
	}
}

func TestSplitChunksDefaultsOnBadParams(t *testing.T) {
	text := strings.Repeat("a valid sentence with enough length to keep. ", 50)
	chunks := SplitChunks(text, 0, -1)
	if len(chunks) == 0 {
		t.Fatal("expected chunks with defaulted parameters")
	}
}
