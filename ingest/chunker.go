package ingest

import (
	"regexp"
	"strings"
)

const (
	// DefaultChunkSize is the target chunk length in characters
	DefaultChunkSize = 1000
	// DefaultChunkOverlap is the number of characters repeated between
	// adjacent chunks
	DefaultChunkOverlap = 200
	// minChunkLength filters out fragments too short to embed usefully
	minChunkLength = 50
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	pageNumberRe = regexp.MustCompile(`Page \d+ of \d+`)
	// Keep Latin text, digits, common punctuation and the Arabic blocks;
	// everything else is extraction noise
	noiseRe = regexp.MustCompile("[^\\w\\s.,;:!?()\\[\\]{}\"'`~@#$%^&*+=|\\\\/<>؀-ۿݐ-ݿࢠ-ࣿ-]")

	sentenceEndings = []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}
)

// CleanText normalizes raw extracted text: collapses whitespace, strips
// page markers and drops characters outside the expected alphabets.
func CleanText(text string) string {
	text = pageNumberRe.ReplaceAllString(text, "")
	text = noiseRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// SplitChunks splits cleaned text into overlapping chunks of roughly
// chunkSize characters. Chunk boundaries back up to the nearest sentence
// ending in the second half of the window so sentences are not cut
// mid-way. Fragments shorter than the minimum are dropped.
func SplitChunks(text string, chunkSize, overlap int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultChunkOverlap
	}

	runes := []rune(text)
	var chunks []string

	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		if end < len(runes) {
			window := string(runes[start:end])
			if cut := lastSentenceEnd(window); cut > chunkSize/2 {
				end = start + cut
			}
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if len([]rune(chunk)) >= minChunkLength {
			chunks = append(chunks, chunk)
		}

		if end == len(runes) {
			break
		}
		// A sentence-boundary cut can pull end back within overlap of
		// start; step past it so the scan always advances
		if next := end - overlap; next > start {
			start = next
		} else {
			start = end
		}
	}

	return chunks
}

// lastSentenceEnd returns the rune offset just past the last sentence
// ending in the window, or -1 if none is found
func lastSentenceEnd(window string) int {
	best := -1
	for _, ending := range sentenceEndings {
		if idx := strings.LastIndex(window, ending); idx >= 0 {
			endOffset := len([]rune(window[:idx])) + 1
			if endOffset > best {
				best = endOffset
			}
		}
	}
	return best
}
