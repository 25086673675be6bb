package model

// Occurrence is one concrete location where a rule matched. LineNumber is
// nil for file-level findings. Context and LegacyNote are filled in by the
// context annotator after the engine runs.
type Occurrence struct {
	LineNumber *int       `json:"line_no"`
	Text       string     `json:"text"`
	Annotation string     `json:"info,omitempty"`
	IsLegacy   bool       `json:"is_legacy"`
	Context    []DiffLine `json:"context,omitempty"`
	LegacyNote string     `json:"legacy_info,omitempty"`
}

func NewLineOccurrence(lineNumber int, text string) *Occurrence {
	return &Occurrence{
		LineNumber: &lineNumber,
		Text:       text,
	}
}

func NewFileOccurrence(text string) *Occurrence {
	return &Occurrence{
		Text: text,
	}
}

// Violation groups the occurrences of one rule in one file. LegacyCount is
// the number of matches suppressed as legacy, kept for transparency.
type Violation struct {
	RuleID      string        `json:"id"`
	Description string        `json:"description"`
	Severity    Severity      `json:"severity"`
	FilePath    string        `json:"file"`
	Occurrences []*Occurrence `json:"occurrences"`
	LegacyCount int           `json:"legacy_count"`
}
