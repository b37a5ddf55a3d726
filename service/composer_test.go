package service

import (
	"strings"
	"testing"

	"lawgpt-backend/models"
)

func TestBuildPromptWithSources(t *testing.T) {
	docs := &RetrievedDocuments{
		Cases: []models.Document{
			{Title: "case-104", Text: "unpaid wages dispute", Source: models.SourceCase, LawType: "case_law"},
		},
		Articles: []models.Document{
			{Title: "labor_law.pdf", Text: "working hours are capped", Filename: "labor_law.pdf", LawType: "labor_law"},
		},
	}

	prompt := buildPrompt(models.FilterLabour, "What are the working hour limits?", docs)

	for _, want := range []string{
		"--- Search Filter: LABOUR Law ---",
		"--- RELEVANT CASES ---",
		"Case: case-104\nunpaid wages dispute",
		"--- RELEVANT LAW ARTICLES ---",
		"Source: labor_law.pdf (labor_law)\nworking hours are capped",
		`"What are the working hour limits?"`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	casesIdx := strings.Index(prompt, "--- RELEVANT CASES ---")
	articlesIdx := strings.Index(prompt, "--- RELEVANT LAW ARTICLES ---")
	if casesIdx > articlesIdx {
		t.Error("cases section must precede law articles")
	}
}

func TestBuildPromptOmitsEmptySections(t *testing.T) {
	docs := &RetrievedDocuments{
		Articles: []models.Document{
			{Title: "traffic_law.pdf", Text: "speeding fines", Filename: "traffic_law.pdf", LawType: "traffic_law"},
		},
	}

	prompt := buildPrompt(models.FilterHybrid, "speeding?", docs)

	if strings.Contains(prompt, "--- RELEVANT CASES ---") {
		t.Error("empty cases partition should not produce a section")
	}
	if !strings.Contains(prompt, "--- RELEVANT LAW ARTICLES ---") {
		t.Error("articles section missing")
	}
}

func TestBuildPromptWithoutSources(t *testing.T) {
	prompt := buildPrompt(models.FilterSharia, "inheritance rules?", &RetrievedDocuments{})

	if !strings.Contains(prompt, "No matching documents") {
		t.Error("empty retrieval should use the general-knowledge prompt")
	}
	if !strings.Contains(prompt, "SHARIA") {
		t.Error("general prompt should still name the active filter")
	}
	if strings.Contains(prompt, "--- RELEVANT") {
		t.Error("general prompt must not claim to have sources")
	}
}
