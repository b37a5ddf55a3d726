package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lawgpt-backend/models"
)

// CaseRecord is one court case entry in a corpus JSON file
type CaseRecord struct {
	CaseID  string `json:"case_id"`
	Summary string `json:"summary"`
}

// LoadCases parses a corpus JSON file of court case records into documents
// ready for embedding. Records without a summary are skipped.
func LoadCases(r io.Reader) ([]models.Document, error) {
	var records []CaseRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode case records: %w", err)
	}

	docs := make([]models.Document, 0, len(records))
	for i, rec := range records {
		summary := strings.TrimSpace(rec.Summary)
		if summary == "" {
			continue
		}
		title := rec.CaseID
		if title == "" {
			title = fmt.Sprintf("case_%d", i)
		}
		docs = append(docs, models.Document{
			Title:   title,
			Text:    CleanText(summary),
			Source:  models.SourceCase,
			LawType: "case_law",
		})
	}

	return docs, nil
}
