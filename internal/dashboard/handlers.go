package dashboard

import (
	"bytes"
	"context"
	"html/template"
	"net/http"
	"strings"

	"github.com/ziadkadry99/annoview/internal/config"
	"github.com/ziadkadry99/annoview/internal/feedback"
	"github.com/ziadkadry99/annoview/internal/viewer"
)

// pageData fills pageTemplate.
type pageData struct {
	Title  string
	Mode   config.Mode
	Viewer template.HTML
}

// ServeIndex renders the viewer for the selection in the query string:
// file (repeated), section and tool.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c := d.newController()
	d.restore(r.Context(), c, q["file"], q.Get("section"), q.Get("tool"))

	var buf bytes.Buffer
	if err := viewer.WriteHTML(&buf, d.renderer.Render(c.State())); err != nil {
		d.log.Error().Err(err).Msg("rendering viewer")
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := pageData{
		Title:  "Annotation viewer",
		Mode:   d.mode,
		Viewer: template.HTML(buf.String()),
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		d.log.Error().Err(err).Msg("writing page")
	}
}

// restore replays a selection on a fresh controller. Fetch errors are
// logged by the controller and leave the view empty.
func (d *Dashboard) restore(ctx context.Context, c *viewer.Controller, files []string, section, tool string) {
	_ = c.Init(ctx)
	if d.mode != config.ModeLegacy && len(files) > 0 {
		_ = c.Select(ctx, files)
	}
	if section != "" {
		c.SelectSection(section)
	}
	if tool != "" {
		c.SelectTool(tool)
	}
}

// handleFeedbackForm stores a verdict posted from an element's feedback
// form and redirects back to the page it came from.
func (d *Dashboard) handleFeedbackForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	fb := feedback.Feedback{
		Filename:  r.PostForm.Get("filename"),
		SectionID: r.PostForm.Get("section"),
		ElementID: r.PostForm.Get("element"),
		Verdict:   feedback.Verdict(r.PostForm.Get("verdict")),
		Comment:   strings.TrimSpace(r.PostForm.Get("comment")),
		Reviewer:  r.PostForm.Get("reviewer"),
	}
	created, err := d.feedback.Create(r.Context(), fb)
	if err != nil {
		d.log.Warn().Err(err).Str("element", fb.ElementID).Msg("feedback rejected")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d.log.Info().
		Str("id", created.ID).
		Str("file", created.Filename).
		Str("section", created.SectionID).
		Str("element", created.ElementID).
		Str("verdict", string(created.Verdict)).
		Msg("feedback recorded")

	http.Redirect(w, r, localRedirect(r.PostForm.Get("return")), http.StatusSeeOther)
}

// localRedirect only allows paths on this server.
func localRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return "/"
	}
	return target
}
