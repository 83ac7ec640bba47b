// Package document models checkpoint documents: an ordered mapping from
// record key to a section or an llm_response annotation batch.
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is an ordered mapping from key to Record. Iteration order is the
// order keys appeared in the source JSON object, which is also the tab order.
type Document struct {
	keys    []string
	records map[string]Record
}

// New returns an empty Document.
func New() *Document {
	return &Document{records: make(map[string]Record)}
}

// Len returns the number of records.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Keys returns the record keys in document order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Get returns the record stored under key.
func (d *Document) Get(key string) (Record, bool) {
	if d == nil {
		return Record{}, false
	}
	r, ok := d.records[key]
	return r, ok
}

// Set stores rec under key. A new key is appended to the end of the order;
// an existing key keeps its position.
func (d *Document) Set(key string, rec Record) {
	if d.records == nil {
		d.records = make(map[string]Record)
	}
	if _, ok := d.records[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.records[key] = rec
}

// Append stores rec under its conventional checkpoint key "<id>|<type>".
func (d *Document) Append(rec Record) {
	d.Set(rec.Key(), rec)
}

// Records returns all records in document order.
func (d *Document) Records() []Record {
	if d == nil {
		return nil
	}
	out := make([]Record, 0, len(d.keys))
	for _, k := range d.keys {
		out = append(out, d.records[k])
	}
	return out
}

// Sections returns the section records in document order.
func (d *Document) Sections() []Section {
	var out []Section
	for _, r := range d.Records() {
		if r.Type == TypeSection && r.Section != nil {
			out = append(out, *r.Section)
		}
	}
	return out
}

// Section returns the section with the given id.
func (d *Document) Section(id string) (Section, bool) {
	for _, s := range d.Sections() {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// ResponsesFor returns every llm_response attached to sectionID, in document order.
func (d *Document) ResponsesFor(sectionID string) []Response {
	var out []Response
	for _, r := range d.Records() {
		if r.Type == TypeResponse && r.Response != nil && r.Response.Section == sectionID {
			out = append(out, *r.Response)
		}
	}
	return out
}

// FirstResponseFor returns the first llm_response attached to sectionID.
func (d *Document) FirstResponseFor(sectionID string) (Response, bool) {
	for _, r := range d.Records() {
		if r.Type == TypeResponse && r.Response != nil && r.Response.Section == sectionID {
			return *r.Response, true
		}
	}
	return Response{}, false
}

// UnmarshalJSON decodes a JSON object keeping key order. An array is
// accepted as well: the API answers [] for unknown files, and each array
// item is stored under its "<id>|<type>" key.
func (d *Document) UnmarshalJSON(data []byte) error {
	*d = Document{records: make(map[string]Record)}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '[' {
		var recs []Record
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return fmt.Errorf("decoding record list: %w", err)
		}
		for _, r := range recs {
			d.Append(r)
		}
		return nil
	}

	return decodeOrdered(trimmed, func(key string, raw json.RawMessage) error {
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return fmt.Errorf("decoding record %q: %w", key, err)
		}
		d.Set(key, rec)
		return nil
	})
}

// MarshalJSON encodes the document as a JSON object in document order.
func (d Document) MarshalJSON() ([]byte, error) {
	return encodeOrdered(d.keys, func(key string) (any, error) {
		return d.records[key], nil
	})
}

// decodeOrdered walks the members of a JSON object in order.
func decodeOrdered(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("reading value for %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// encodeOrdered writes a JSON object whose members follow keys.
func encodeOrdered(keys []string, value func(key string) (any, error)) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')

		v, err := value(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Stats counts the records of a document.
type Stats struct {
	Sections  int
	Responses int
	Elements  int
	Other     int
}

// Stats returns record counts by type.
func (d *Document) Stats() Stats {
	var st Stats
	for _, r := range d.Records() {
		switch {
		case r.Type == TypeSection && r.Section != nil:
			st.Sections++
		case r.Type == TypeResponse && r.Response != nil:
			st.Responses++
			st.Elements += len(r.Response.Elements)
		default:
			st.Other++
		}
	}
	return st
}
