package models

// Document source tags as stored in the vector store payload
const (
	SourceCase = "case"
	SourcePDF  = "pdf"
)

// Document represents one retrieved unit of legal text. Documents are
// immutable once retrieved and live only for the duration of a single
// chat request.
type Document struct {
	Title      string  `json:"title"`
	Text       string  `json:"text"`
	Source     string  `json:"source"`   // "case" or "pdf"
	LawType    string  `json:"law_type"` // e.g. "labor_law", "case_law"
	Filename   string  `json:"filename"`
	ChunkIndex int     `json:"chunk_index,omitempty"`
	Score      float64 `json:"score"` // similarity score, higher = more relevant
}
