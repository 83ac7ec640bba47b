package viewer

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ziadkadry99/annoview/internal/config"
	"github.com/ziadkadry99/annoview/internal/document"
)

// Controller owns the ViewState of one viewer session and applies
// selections to it. It is safe for concurrent use.
type Controller struct {
	src Source
	log zerolog.Logger

	mu     sync.Mutex
	state  ViewState
	cancel context.CancelFunc
	subs   []func(ViewState)

	deliver sync.Mutex
}

// NewController creates a Controller in the given mode with the registry's
// default tool selected.
func NewController(src Source, mode config.Mode, registry *Registry, log zerolog.Logger) *Controller {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if mode == "" {
		mode = config.ModeCompare
	}
	return &Controller{
		src: src,
		log: log.With().Str("component", "viewer").Logger(),
		state: ViewState{
			Mode: mode,
			Tool: registry.Default(),
		},
	}
}

// State returns a copy of the current state.
func (c *Controller) State() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// OnChange registers fn to be called after every state change. fn runs
// outside the controller's lock and may call State, but must not change
// the selection.
func (c *Controller) OnChange(fn func(ViewState)) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

// Init loads the initial data for the controller's mode.
func (c *Controller) Init(ctx context.Context) error {
	if c.State().Mode == config.ModeLegacy {
		return c.LoadLegacy(ctx)
	}
	return c.LoadFiles(ctx)
}

// LoadFiles fetches the file list for the selector.
func (c *Controller) LoadFiles(ctx context.Context) error {
	files, err := c.src.ListFiles(ctx)
	if err != nil {
		c.logFetch(err, "listing files")
		return fmt.Errorf("listing files: %w", err)
	}
	c.update(func(s *ViewState) { s.Files = files })
	return nil
}

// LoadLegacy fetches the single document served in legacy mode and makes
// it the primary document.
func (c *Controller) LoadLegacy(ctx context.Context) error {
	gen := c.begin()
	doc, err := c.src.Documents(ctx)
	if err != nil {
		c.logFetch(err, "fetching documents")
		return fmt.Errorf("fetching documents: %w", err)
	}
	c.apply(gen, func(s *ViewState) bool {
		setPrimary(s, doc)
		return true
	})
	return nil
}

// Select replaces the file selection. The first file becomes the primary
// document; the rest are fetched as the comparison set. Both fetches run
// concurrently. The selection takes effect when the primary document
// arrives, with one comparison entry per other file; comparison documents
// fill those entries as soon as they are available. Results are dropped
// when a newer selection has been made in the meantime. An empty
// selection clears the view.
//
// Fetch errors are logged and returned. A failed primary fetch leaves the
// previous selection in place; a failed comparison fetch leaves its
// entries empty.
func (c *Controller) Select(ctx context.Context, files []string) error {
	files = append([]string(nil), files...)

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.Generation++
	gen := c.state.Generation
	if len(files) == 0 {
		c.state.Selected = nil
		c.state.Primary = nil
		c.state.Comparison = nil
		c.state.Tabs = Tabs{}
		c.mu.Unlock()
		c.notify()
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()
	c.notify()

	defer func() {
		c.mu.Lock()
		if c.state.Generation == gen {
			c.cancel = nil
		}
		c.mu.Unlock()
		cancel()
	}()

	// Only touched inside apply, under the controller lock.
	p := &pendingSelection{others: files[1:]}

	// A plain group: a failed comparison fetch must not cancel the primary.
	var g errgroup.Group
	g.Go(func() error {
		doc, err := c.src.SingleDocument(ctx, files[0])
		if err != nil {
			c.logFetch(err, "fetching primary document")
			return fmt.Errorf("fetching %s: %w", files[0], err)
		}
		c.apply(gen, func(s *ViewState) bool {
			s.Selected = files
			setPrimary(s, doc)
			s.Comparison = p.comparison()
			p.applied = true
			return true
		})
		return nil
	})

	if len(p.others) > 0 {
		g.Go(func() error {
			coll, err := c.src.MultipleDocuments(ctx, p.others)
			if err != nil {
				c.logFetch(err, "fetching comparison documents")
				return fmt.Errorf("fetching comparison documents: %w", err)
			}
			named := make([]document.Named, 0, len(p.others))
			for _, name := range p.others {
				doc, ok := coll.Get(name)
				if !ok {
					doc = document.New()
				}
				named = append(named, document.Named{Name: name, Document: doc})
			}
			c.apply(gen, func(s *ViewState) bool {
				p.fetched = named
				if !p.applied {
					return false
				}
				s.Comparison = p.comparison()
				return true
			})
			return nil
		})
	}

	return g.Wait()
}

// pendingSelection collects the results of one Select call until they can
// be applied together.
type pendingSelection struct {
	others  []string
	fetched []document.Named
	applied bool
}

// comparison returns the fetched comparison documents, or one entry with a
// nil document per other file while they are missing.
func (p *pendingSelection) comparison() []document.Named {
	if len(p.others) == 0 {
		return nil
	}
	if p.fetched != nil {
		return p.fetched
	}
	out := make([]document.Named, len(p.others))
	for i, name := range p.others {
		out[i] = document.Named{Name: name}
	}
	return out
}

// SelectSection makes id the active section. It reports false when the
// primary document has no such section.
func (c *Controller) SelectSection(id string) bool {
	c.mu.Lock()
	ok := c.state.Tabs.Select(id)
	c.mu.Unlock()
	if ok {
		c.notify()
	}
	return ok
}

// SelectTool switches the tool shown for the active section. Unknown tools
// are accepted and hide the tool area.
func (c *Controller) SelectTool(name string) {
	c.update(func(s *ViewState) { s.Tool = name })
}

// begin starts a new generation without touching the selection.
func (c *Controller) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Generation++
	return c.state.Generation
}

// apply runs fn on the state only if gen is still the current generation.
// Subscribers are notified when fn reports a change.
func (c *Controller) apply(gen uint64, fn func(*ViewState) bool) {
	c.mu.Lock()
	if c.state.Generation != gen {
		c.mu.Unlock()
		c.log.Debug().Uint64("generation", gen).Msg("dropping stale result")
		return
	}
	changed := fn(&c.state)
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

func (c *Controller) update(fn func(*ViewState)) {
	c.mu.Lock()
	fn(&c.state)
	c.mu.Unlock()
	c.notify()
}

// notify delivers a snapshot to every subscriber. Deliveries are
// serialized so the last one always carries the latest state.
func (c *Controller) notify() {
	c.deliver.Lock()
	defer c.deliver.Unlock()

	c.mu.Lock()
	snap := c.state.clone()
	subs := slices.Clone(c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (c *Controller) logFetch(err error, msg string) {
	if errors.Is(err, context.Canceled) {
		c.log.Debug().Err(err).Msg(msg)
		return
	}
	c.log.Warn().Err(err).Msg(msg)
}

// setPrimary installs doc and rebuilds the tabs, keeping the active
// section when the new document has it.
func setPrimary(s *ViewState, doc *document.Document) {
	if doc == nil {
		doc = document.New()
	}
	restore := s.Tabs.Active()
	s.Primary = doc
	s.Tabs = BuildTabs(doc, restore)
}
