package viewer

import (
	"github.com/ziadkadry99/annoview/internal/config"
	"github.com/ziadkadry99/annoview/internal/document"
)

// ViewState is everything Render needs. It is a plain value; the
// Controller hands out copies.
type ViewState struct {
	Mode config.Mode

	// Files is the list offered by the file selector.
	Files []string
	// Selected holds the chosen files; the first one is the primary.
	Selected []string

	Primary *document.Document
	// Comparison holds the documents for Selected[1:], in selection order.
	Comparison []document.Named

	Tabs Tabs
	Tool string

	// Generation increases with every selection.
	Generation uint64
}

// PrimaryName returns the primary file name, or "" in legacy mode or with
// nothing selected.
func (s ViewState) PrimaryName() string {
	if len(s.Selected) == 0 {
		return ""
	}
	return s.Selected[0]
}

// Comparing reports whether elements are shown side by side.
func (s ViewState) Comparing() bool {
	return s.Mode != config.ModeLegacy && len(s.Selected) > 1
}

// ActiveSection returns the active section id.
func (s ViewState) ActiveSection() string {
	return s.Tabs.Active()
}

// IsSelected reports whether name is in the selection.
func (s ViewState) IsSelected(name string) bool {
	for _, f := range s.Selected {
		if f == name {
			return true
		}
	}
	return false
}

// clone copies the slices so callers can not mutate the controller's state.
func (s ViewState) clone() ViewState {
	c := s
	c.Files = append([]string(nil), s.Files...)
	c.Selected = append([]string(nil), s.Selected...)
	c.Comparison = append([]document.Named(nil), s.Comparison...)
	c.Tabs.Items = append([]Tab(nil), s.Tabs.Items...)
	return c
}
