package domain

import "math"

// SnippetContentLimit is the maximum snippet content length in runes.
// Longer content is truncated and marked with an ellipsis.
const SnippetContentLimit = 200

// Snippet is an attributed excerpt of a retrieved document included in an
// Answer so callers can render the grounding material.
type Snippet struct {
	// Source is the originating framework.
	Source string `json:"source"`

	// Section is the framework section reference.
	Section string `json:"section"`

	// Title is the document title.
	Title string `json:"title"`

	// Content is the document text, truncated to SnippetContentLimit runes
	// with a trailing "..." when truncation occurred.
	Content string `json:"content"`

	// Relevance is the retrieval relevance rounded to 3 decimal digits.
	Relevance float64 `json:"relevance"`
}

// Answer is the result of one question through the pipeline.
// It is produced fresh per call and never cached.
type Answer struct {
	// Question is the question as asked.
	Question string `json:"question"`

	// Response is the generated text, verbatim.
	Response string `json:"response"`

	// Sources is the set of unique framework names the response is
	// grounded in. Order carries no meaning; it is emitted sorted so
	// output is deterministic.
	Sources []string `json:"sources"`

	// RelevantSnippets lists the retrieved excerpts in descending
	// relevance order.
	RelevantSnippets []Snippet `json:"relevant_snippets"`
}

// NewSnippet builds the Answer projection of a retrieved document,
// truncating content and rounding the relevance score.
func NewSnippet(doc RetrievedDoc) Snippet {
	return Snippet{
		Source:    doc.Source,
		Section:   doc.Section,
		Title:     doc.Title,
		Content:   TruncateContent(doc.Content, SnippetContentLimit),
		Relevance: RoundRelevance(doc.Relevance),
	}
}

// TruncateContent shortens content to at most limit runes, appending an
// ellipsis marker when anything was cut. Content at or under the limit is
// returned unmodified.
func TruncateContent(content string, limit int) string {
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + "..."
}

// RoundRelevance rounds a relevance score to 3 decimal digits.
func RoundRelevance(r float64) float64 {
	return math.Round(r*1000) / 1000
}
