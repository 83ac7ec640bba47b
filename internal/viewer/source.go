// Package viewer renders checkpoint documents as an annotation viewer: a
// tab per section, highlighted element statements and an optional
// side-by-side comparison across checkpoint files.
//
// Rendering is split in two. Render builds a declarative tree from a
// ViewState; WriteHTML serializes it.
package viewer

import (
	"context"

	"github.com/ziadkadry99/annoview/internal/document"
)

// Source provides the documents a Controller displays. Both the local
// checkpoint store and the remote API client satisfy it.
type Source interface {
	ListFiles(ctx context.Context) ([]string, error)
	SingleDocument(ctx context.Context, name string) (*document.Document, error)
	MultipleDocuments(ctx context.Context, names []string) (*document.Collection, error)
	Documents(ctx context.Context) (*document.Document, error)
}
