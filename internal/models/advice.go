package models

// Advice is the structured form of the generated growth advice: an
// ordered list of sections, each with optional one-level subsections.
// Built either by parsing generated text or by the deterministic
// fallback constructor; never mutated after construction.
type Advice struct {
	Sections []AdviceSection `json:"sections"`
}

// AdviceSection is one "##" heading with its paragraphs.
type AdviceSection struct {
	Title       string             `json:"title"`
	Content     []string           `json:"content"`
	Subsections []AdviceSubsection `json:"subsections,omitempty"`
}

// AdviceSubsection is one "###" heading within a section. No nesting
// beyond this level.
type AdviceSubsection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}
