package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument() Document {
	return Document{
		ID:      "nist-pr-aa-01",
		Source:  "NIST CSF 2.0",
		Section: "PR.AA-01",
		Title:   "Identity Management",
		Content: "Identities and credentials for authorized users are managed.",
	}
}

func TestDocument_Validate(t *testing.T) {
	doc := validDocument()
	require.NoError(t, doc.Validate())
}

func TestDocument_Validate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"missing id", func(d *Document) { d.ID = "" }},
		{"missing source", func(d *Document) { d.Source = "" }},
		{"missing section", func(d *Document) { d.Section = "" }},
		{"missing title", func(d *Document) { d.Title = "" }},
		{"missing content", func(d *Document) { d.Content = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument()
			tt.mutate(&doc)
			assert.Error(t, doc.Validate())
		})
	}
}

func TestDocument_Metadata(t *testing.T) {
	doc := validDocument()
	meta := doc.Metadata()

	assert.Equal(t, doc.Source, meta.Source)
	assert.Equal(t, doc.Section, meta.Section)
	assert.Equal(t, doc.Title, meta.Title)
	require.NoError(t, meta.Validate())
}

func TestDocMetadata_Validate_Incomplete(t *testing.T) {
	meta := DocMetadata{Source: "NIST CSF 2.0", Section: "", Title: "x"}
	assert.Error(t, meta.Validate())
}

func TestDocument_SearchableText(t *testing.T) {
	doc := validDocument()
	text := doc.SearchableText()

	assert.True(t, strings.HasPrefix(text, doc.Title+": "))
	assert.Contains(t, text, doc.Content)
}
