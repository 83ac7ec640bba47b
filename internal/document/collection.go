package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Named pairs a checkpoint file name with its document.
type Named struct {
	Name     string
	Document *Document
}

// Collection is an ordered mapping from file name to Document, as returned
// by /api/multiple_documents. Order follows the request's file order.
type Collection struct {
	names []string
	docs  map[string]*Document
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{docs: make(map[string]*Document)}
}

// Put stores doc under name, appending name to the order if new.
func (c *Collection) Put(name string, doc *Document) {
	if c.docs == nil {
		c.docs = make(map[string]*Document)
	}
	if _, ok := c.docs[name]; !ok {
		c.names = append(c.names, name)
	}
	if doc == nil {
		doc = New()
	}
	c.docs[name] = doc
}

// Get returns the document stored under name.
func (c *Collection) Get(name string) (*Document, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.docs[name]
	return d, ok
}

// Len returns the number of documents.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Names returns the file names in order.
func (c *Collection) Names() []string {
	if c == nil {
		return nil
	}
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// UnmarshalJSON decodes a JSON object of documents keeping key order.
func (c *Collection) UnmarshalJSON(data []byte) error {
	*c = Collection{docs: make(map[string]*Document)}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return decodeOrdered(trimmed, func(key string, raw json.RawMessage) error {
		doc := New()
		if err := json.Unmarshal(raw, doc); err != nil {
			return fmt.Errorf("decoding document %q: %w", key, err)
		}
		c.Put(key, doc)
		return nil
	})
}

// MarshalJSON encodes the collection in order.
func (c Collection) MarshalJSON() ([]byte, error) {
	return encodeOrdered(c.names, func(key string) (any, error) {
		return c.docs[key], nil
	})
}
