// Package dashboard serves the annotation viewer page, its live websocket
// channel and the element feedback form.
package dashboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/annoview/internal/config"
	"github.com/ziadkadry99/annoview/internal/feedback"
	"github.com/ziadkadry99/annoview/internal/viewer"
)

// Dashboard renders viewer sessions over HTTP and websockets.
type Dashboard struct {
	src      viewer.Source
	mode     config.Mode
	renderer *viewer.Renderer
	feedback *feedback.Store
	log      zerolog.Logger
}

// New creates a Dashboard. feedbackStore may be nil, which disables the
// feedback forms.
func New(src viewer.Source, mode config.Mode, renderer *viewer.Renderer, feedbackStore *feedback.Store, log zerolog.Logger) *Dashboard {
	if feedbackStore != nil {
		renderer.FeedbackAction = "/feedback"
	}
	return &Dashboard{
		src:      src,
		mode:     mode,
		renderer: renderer,
		feedback: feedbackStore,
		log:      log.With().Str("component", "dashboard").Logger(),
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", d.ServeIndex)
	r.Get("/ws/view", d.handleWebSocket)
	if d.feedback != nil {
		r.Post("/feedback", d.handleFeedbackForm)
	}
}

func (d *Dashboard) newController() *viewer.Controller {
	return viewer.NewController(d.src, d.mode, d.renderer.Registry(), d.log)
}
