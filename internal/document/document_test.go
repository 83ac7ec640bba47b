package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checkpointJSON = `{
  "§ 275.0-7|section": {"id": "§ 275.0-7", "type": "section", "content": "Small entities."},
  "§ 275.0-2|section": {"id": "§ 275.0-2", "type": "section", "content": "Service of process."},
  "§ 275.0-7|llm_response": {
    "id": "§ 275.0-7", "type": "llm_response",
    "content": {
      "section": "§ 275.0-7",
      "summary": "Defines small entities.",
      "elements": [
        {"id": 1, "statement": "The customer pays the invoice", "classification": "Fact Type",
         "terms": [{"term": "customer", "classification": "Common Noun"}],
         "verb_symbols": ["pays"], "sources": "[(a)(1)]"}
      ]
    }
  },
  "pass-1|report": {"id": "pass-1", "type": "report", "content": {"tokens": 10}}
}`

func TestDocumentPreservesKeyOrder(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(checkpointJSON), &doc))

	assert.Equal(t, []string{
		"§ 275.0-7|section",
		"§ 275.0-2|section",
		"§ 275.0-7|llm_response",
		"pass-1|report",
	}, doc.Keys())

	sections := doc.Sections()
	require.Len(t, sections, 2)
	assert.Equal(t, "§ 275.0-7", sections[0].ID)
	assert.Equal(t, "Small entities.", sections[0].Content)
	assert.Equal(t, "§ 275.0-2", sections[1].ID)
}

func TestDocumentDecodesResponses(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(checkpointJSON), &doc))

	resps := doc.ResponsesFor("§ 275.0-7")
	require.Len(t, resps, 1)
	assert.Equal(t, "Defines small entities.", resps[0].Summary)

	el, ok := resps[0].Element("1")
	require.True(t, ok, "numeric ids decode as strings")
	assert.Equal(t, FactType, el.Classification)
	assert.Equal(t, []Term{{Term: "customer", Classification: CommonNoun}}, el.Terms)
	assert.Equal(t, []string{"pays"}, el.VerbSymbols)
	assert.Equal(t, "(a)(1)", el.Sources.Display())

	assert.Empty(t, doc.ResponsesFor("§ 275.0-2"))
	_, ok = doc.FirstResponseFor("§ 275.0-2")
	assert.False(t, ok)
}

func TestDocumentKeepsUnknownRecords(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(checkpointJSON), &doc))

	rec, ok := doc.Get("pass-1|report")
	require.True(t, ok)
	assert.Equal(t, RecordType("report"), rec.Type)
	assert.JSONEq(t, `{"tokens": 10}`, string(rec.Raw))
}

func TestDocumentEmptyArray(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`[]`), &doc))
	assert.Equal(t, 0, doc.Len())
	assert.Empty(t, doc.Sections())
}

func TestDocumentMarshalKeepsOrder(t *testing.T) {
	doc := New()
	doc.Append(NewSectionRecord(Section{ID: "b", Content: "second letter"}))
	doc.Append(NewSectionRecord(Section{ID: "a", Content: "first letter"}))

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t,
		`{"b|section":{"id":"b","type":"section","content":"second letter"},"a|section":{"id":"a","type":"section","content":"first letter"}}`,
		string(data))

	var back Document
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"b|section", "a|section"}, back.Keys())
}

func TestSourcesDisplay(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bracketed string", `"[ABC-1]"`, "ABC-1"},
		{"plain string", `"ABC-1"`, "ABC-1"},
		{"only one bracket pair stripped", `"[[x]]"`, "[x]"},
		{"leading bracket only", `"[ABC-1"`, "ABC-1"},
		{"list", `["(a)", "(b)(2)"]`, "(a), (b)(2)"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Sources
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &s))
			assert.Equal(t, tt.want, s.Display())
		})
	}
}

func TestElementMissingArrays(t *testing.T) {
	var el Element
	require.NoError(t, json.Unmarshal([]byte(`{"id":"E1","statement":"x","classification":"Operative Rule"}`), &el))
	assert.Nil(t, el.Terms)
	assert.Nil(t, el.VerbSymbols)
	assert.Equal(t, "", el.Sources.Display())
}

func TestCollectionOrder(t *testing.T) {
	var c Collection
	require.NoError(t, json.Unmarshal([]byte(`{"z.json": {}, "a.json": []}`), &c))
	assert.Equal(t, []string{"z.json", "a.json"}, c.Names())

	doc, ok := c.Get("a.json")
	require.True(t, ok)
	assert.Equal(t, 0, doc.Len())
}

func TestDocumentStats(t *testing.T) {
	var doc Document
	require.NoError(t, json.Unmarshal([]byte(checkpointJSON), &doc))

	assert.Equal(t, Stats{Sections: 2, Responses: 1, Elements: 1, Other: 1}, doc.Stats())

	var nilDoc *Document
	assert.Equal(t, Stats{}, nilDoc.Stats())
}
