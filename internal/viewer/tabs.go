package viewer

import "github.com/ziadkadry99/annoview/internal/document"

// Tab is one section tab.
type Tab struct {
	ID     string
	Active bool
}

// Tabs is the ordered tab strip for a document. At most one tab is active.
type Tabs struct {
	Items []Tab
}

// BuildTabs creates one tab per section record in document order. The tab
// for restoreID is active when that section exists; otherwise the first tab
// is active.
func BuildTabs(doc *document.Document, restoreID string) Tabs {
	if doc == nil {
		return Tabs{}
	}
	sections := doc.Sections()
	if len(sections) == 0 {
		return Tabs{}
	}

	items := make([]Tab, len(sections))
	active := 0
	for i, s := range sections {
		items[i] = Tab{ID: s.ID}
		if restoreID != "" && s.ID == restoreID {
			active = i
		}
	}
	items[active].Active = true
	return Tabs{Items: items}
}

// Active returns the id of the active tab, or "" when there are no tabs.
func (t Tabs) Active() string {
	for _, it := range t.Items {
		if it.Active {
			return it.ID
		}
	}
	return ""
}

// Select makes id the only active tab. It reports false and leaves the tabs
// unchanged when id is not a tab.
func (t *Tabs) Select(id string) bool {
	found := false
	for _, it := range t.Items {
		if it.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	for i := range t.Items {
		t.Items[i].Active = t.Items[i].ID == id
	}
	return true
}
