package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// clientEvent is what the presenter sends over the socket: a user
// interaction to forward to the controller.
type clientEvent struct {
	Action string `json:"action"` // select, toggle, search, page, refresh
	Value  string `json:"value"`
}

// handleWebSocket upgrades to WebSocket, streams view models to the
// presenter, and applies the presenter's events to the controller.
func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	views := s.ctrl.Subscribe()

	// Read pump — forward presenter events, detect disconnect.
	go func() {
		for {
			var ev clientEvent
			if err := conn.ReadJSON(&ev); err != nil {
				conn.Close()
				return
			}
			s.apply(ev)
		}
	}()

	// Send the current view immediately so a new presenter is not blank.
	if vm, ok := s.ctrl.LatestView(); ok {
		if err := conn.WriteJSON(vm); err != nil {
			return
		}
	}

	// Write pump — push every recomputed view model.
	for vm := range views {
		if err := conn.WriteJSON(vm); err != nil {
			s.log.Debug().Err(err).Msg("websocket write failed")
			return
		}
	}
}

// apply translates one presenter event into a controller call.
func (s *Server) apply(ev clientEvent) {
	switch ev.Action {
	case "select":
		s.ctrl.SelectSource(ev.Value)
	case "toggle":
		s.ctrl.ToggleLevel(ev.Value)
	case "search":
		s.ctrl.SetSearchTerm(ev.Value)
	case "page":
		if n, err := strconv.Atoi(ev.Value); err == nil {
			s.ctrl.GoToPage(n)
		}
	case "refresh":
		s.ctrl.Refresh()
	default:
		s.log.Warn().Str("action", ev.Action).Msg("ignoring unknown websocket action")
	}
}
