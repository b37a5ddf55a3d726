package ingest

import (
	"fmt"
	"io"
	"path"

	"lawgpt-backend/models"
)

// LoadArticles reads one extracted law text file, cleans it and splits it
// into chunk documents ready for embedding. The filename drives the law
// type tag carried on every chunk.
func LoadArticles(r io.Reader, filename string) ([]models.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	text := CleanText(string(raw))
	chunks := SplitChunks(text, DefaultChunkSize, DefaultChunkOverlap)
	lawType := CategorizeLaw(filename)
	base := path.Base(filename)

	docs := make([]models.Document, 0, len(chunks))
	for i, chunk := range chunks {
		docs = append(docs, models.Document{
			Title:      base,
			Text:       chunk,
			Source:     models.SourcePDF,
			LawType:    lawType,
			Filename:   base,
			ChunkIndex: i,
		})
	}

	return docs, nil
}
