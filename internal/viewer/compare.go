package viewer

import (
	"fmt"

	"github.com/ziadkadry99/annoview/internal/document"
)

// PrimaryTitle is the heading of the first comparison column.
const PrimaryTitle = "Primary Document"

// Column is one cell of a comparison block. Exactly one of Element and
// Placeholder is set.
type Column struct {
	Title       string
	Element     *document.Element
	Placeholder string
}

// ComparisonBlock lines up one primary element with its counterparts.
type ComparisonBlock struct {
	ElementID string
	Columns   []Column
}

// Compare builds the block for primary by looking up the same section and
// element id in each of others, in order.
func Compare(primary document.Element, sectionID string, others []document.Named) ComparisonBlock {
	p := primary
	block := ComparisonBlock{
		ElementID: primary.ID,
		Columns:   make([]Column, 0, 1+len(others)),
	}
	block.Columns = append(block.Columns, Column{Title: PrimaryTitle, Element: &p})

	for _, o := range others {
		col := Column{Title: o.Name}
		resp, ok := firstResponse(o.Document, sectionID)
		switch {
		case !ok:
			col.Placeholder = fmt.Sprintf("No matching section in %s", o.Name)
		default:
			if el, found := resp.Element(primary.ID); found {
				col.Element = &el
			} else {
				col.Placeholder = fmt.Sprintf("No matching element for ID %s", primary.ID)
			}
		}
		block.Columns = append(block.Columns, col)
	}
	return block
}

// CompareResponse builds one block per element of resp, in element order.
func CompareResponse(resp document.Response, others []document.Named) []ComparisonBlock {
	blocks := make([]ComparisonBlock, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		blocks = append(blocks, Compare(el, resp.Section, others))
	}
	return blocks
}

func firstResponse(doc *document.Document, sectionID string) (document.Response, bool) {
	if doc == nil {
		return document.Response{}, false
	}
	return doc.FirstResponseFor(sectionID)
}
