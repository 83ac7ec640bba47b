package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// RecordType tags the variant stored in a Record.
type RecordType string

const (
	TypeSection  RecordType = "section"
	TypeResponse RecordType = "llm_response"
)

// Record is one checkpoint entry. Exactly one of Section or Response is set
// for the known types; records of any other type keep their content in Raw.
type Record struct {
	ID       string
	Type     RecordType
	Section  *Section
	Response *Response
	Raw      json.RawMessage
}

// Key returns the conventional checkpoint key for the record.
func (r Record) Key() string {
	return r.ID + "|" + string(r.Type)
}

// Section is a unit of source text and the unit of tab navigation.
type Section struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// Response is an annotation batch tied to exactly one section by id.
type Response struct {
	Section  string    `json:"section"`
	Summary  string    `json:"summary"`
	Elements []Element `json:"elements"`
}

// Element returns the element with the given id.
func (r Response) Element(id string) (Element, bool) {
	for _, el := range r.Elements {
		if el.ID == id {
			return el, true
		}
	}
	return Element{}, false
}

// NewSectionRecord wraps a section in a Record.
func NewSectionRecord(s Section) Record {
	return Record{ID: s.ID, Type: TypeSection, Section: &s}
}

// NewResponseRecord wraps a response in a Record with the given id.
func NewResponseRecord(id string, resp Response) Record {
	return Record{ID: id, Type: TypeResponse, Response: &resp}
}

type recordJSON struct {
	ID      string          `json:"id"`
	Type    RecordType      `json:"type"`
	Content json.RawMessage `json:"content"`
}

// UnmarshalJSON decodes {id, type, content}, interpreting content by type.
func (r *Record) UnmarshalJSON(data []byte) error {
	var aux recordJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*r = Record{ID: aux.ID, Type: aux.Type}

	switch aux.Type {
	case TypeSection:
		r.Section = &Section{ID: aux.ID, Content: decodeSectionContent(aux.Content)}
	case TypeResponse:
		var resp Response
		if len(aux.Content) > 0 && !bytes.Equal(aux.Content, []byte("null")) {
			if err := json.Unmarshal(aux.Content, &resp); err != nil {
				return fmt.Errorf("decoding llm_response content: %w", err)
			}
		}
		r.Response = &resp
	default:
		r.Raw = aux.Content
	}
	return nil
}

// decodeSectionContent accepts a plain string, an object with a content
// field, or falls back to the raw JSON text.
func decodeSectionContent(raw json.RawMessage) string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Content != "" {
		return obj.Content
	}
	return string(raw)
}

// MarshalJSON encodes the record in checkpoint form.
func (r Record) MarshalJSON() ([]byte, error) {
	out := struct {
		ID      string     `json:"id"`
		Type    RecordType `json:"type"`
		Content any        `json:"content"`
	}{ID: r.ID, Type: r.Type}

	switch {
	case r.Section != nil:
		out.Content = r.Section.Content
	case r.Response != nil:
		out.Content = r.Response
	case len(r.Raw) > 0:
		out.Content = r.Raw
	}
	return json.Marshal(out)
}

// Classification values for elements.
const (
	FactType      = "Fact Type"
	OperativeRule = "Operative Rule"
)

// Classification values for terms.
const (
	CommonNoun = "Common Noun"
	ProperNoun = "Proper Noun"
)

// Element is an extracted, classified statement.
type Element struct {
	ID             string   `json:"id"`
	Statement      string   `json:"statement"`
	Classification string   `json:"classification"`
	Terms          []Term   `json:"terms"`
	VerbSymbols    []string `json:"verb_symbols"`
	Sources        Sources  `json:"sources"`
}

// UnmarshalJSON accepts numeric element ids alongside strings.
func (e *Element) UnmarshalJSON(data []byte) error {
	type plain Element
	aux := struct {
		ID json.RawMessage `json:"id"`
		*plain
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.ID = scalarString(aux.ID)
	return nil
}

// Term is a recognized noun inside a statement.
type Term struct {
	Term           string `json:"term"`
	Classification string `json:"classification"`
}

// Sources is the citation attached to an element. Producers emit either a
// string, sometimes wrapped in literal brackets, or a list of strings.
type Sources []string

// UnmarshalJSON accepts a string, an array of strings or null.
func (s *Sources) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		*s = nil
	case trimmed[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		out := make(Sources, 0, len(items))
		for _, it := range items {
			out = append(out, scalarString(it))
		}
		*s = out
	default:
		*s = Sources{scalarString(trimmed)}
	}
	return nil
}

// MarshalJSON writes a single source as a string and several as an array.
func (s Sources) MarshalJSON() ([]byte, error) {
	switch len(s) {
	case 0:
		return []byte(`""`), nil
	case 1:
		return json.Marshal(s[0])
	default:
		return json.Marshal([]string(s))
	}
}

// Display returns the citation text with one leading "[" and one trailing
// "]" removed.
func (s Sources) Display() string {
	text := strings.Join(s, ", ")
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")
	return text
}

// scalarString renders a JSON string or number as text.
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
