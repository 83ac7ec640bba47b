package viewer

import "github.com/ziadkadry99/annoview/internal/document"

// Content is what the tool area shows for the active section.
type Content struct {
	// Visible is false when no section is active; the tool area is then
	// hidden rather than rendered empty.
	Visible   bool
	Section   document.Section
	Responses []document.Response
}

// LoadContent joins the active section with every llm_response that
// references it, in document order.
func LoadContent(doc *document.Document, sectionID string) Content {
	if doc == nil || sectionID == "" {
		return Content{}
	}
	sec, ok := doc.Section(sectionID)
	if !ok {
		return Content{}
	}
	return Content{
		Visible:   true,
		Section:   sec,
		Responses: doc.ResponsesFor(sectionID),
	}
}
