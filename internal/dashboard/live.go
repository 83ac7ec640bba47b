package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/annoview/internal/viewer"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// viewRequest is the incoming WebSocket message format.
type viewRequest struct {
	Type    string   `json:"type"` // "select_files", "select_section" or "select_tool"
	Files   []string `json:"files,omitempty"`
	Section string   `json:"section,omitempty"`
	Tool    string   `json:"tool,omitempty"`
}

// viewResponse is the outgoing WebSocket message format.
type viewResponse struct {
	Type       string `json:"type"` // "view" or "error"
	Session    string `json:"session"`
	Generation uint64 `json:"generation"`
	HTML       string `json:"html,omitempty"`
	Content    string `json:"content,omitempty"`
}

// liveSession is one websocket connection with its own controller. Every
// state change is pushed as a freshly rendered view.
type liveSession struct {
	id   string
	conn *websocket.Conn
	d    *Dashboard

	wmu sync.Mutex
	wg  sync.WaitGroup
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	s := &liveSession{id: uuid.New().String(), conn: conn, d: d}
	log := d.log.With().Str("session", s.id).Logger()

	ctx, cancel := context.WithCancel(r.Context())
	defer s.wg.Wait()
	defer cancel()

	c := d.newController()
	c.OnChange(s.push)
	if err := c.Init(ctx); err != nil {
		s.sendError(err.Error())
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket read")
			}
			return
		}

		var req viewRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendError("invalid message format")
			continue
		}

		switch req.Type {
		case "select_files":
			// Runs in the background so a newer selection can supersede it.
			s.wg.Add(1)
			go func(files []string) {
				defer s.wg.Done()
				if err := c.Select(ctx, files); err != nil && ctx.Err() == nil {
					s.sendError(err.Error())
				}
			}(req.Files)
		case "select_section":
			if !c.SelectSection(req.Section) {
				s.sendError("unknown section: " + req.Section)
			}
		case "select_tool":
			c.SelectTool(req.Tool)
		default:
			s.sendError("unknown message type: " + req.Type)
		}
	}
}

func (s *liveSession) push(state viewer.ViewState) {
	s.send(viewResponse{
		Type:       "view",
		Session:    s.id,
		Generation: state.Generation,
		HTML:       viewer.HTMLString(s.d.renderer.Render(state)),
	})
}

func (s *liveSession) sendError(message string) {
	s.send(viewResponse{Type: "error", Session: s.id, Content: message})
}

// send serializes writes; gorilla connections allow one writer at a time.
func (s *liveSession) send(resp viewResponse) {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	if err := s.conn.WriteJSON(resp); err != nil {
		s.d.log.Debug().Err(err).Str("session", s.id).Msg("websocket write")
	}
}
