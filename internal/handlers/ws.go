package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/okulov/sweeper/internal/metrics"
	"github.com/okulov/sweeper/internal/mines"
)

// ConnectWS serves live play: the client sends newline-separated text
// commands and receives the full session snapshot after each batch.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.session(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithField("error", err).Error("upgrade failed")
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.log.WithField("error", err).Warn("ws read")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		s.Lock()
		before := s.State.Status()
		for _, line := range strings.Split(string(message), "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if err := executeCommand(s.State, line); err != nil {
				s.Unlock()
				g.log.WithField("error", err).Error("ws command")
				return
			}
			if s.State.Status() != mines.StatusPlaying {
				break
			}
		}
		if after := s.State.Status(); before == mines.StatusPlaying &&
			after != mines.StatusPlaying {
			metrics.GamesEnded.WithLabelValues(after.String()).Inc()
			s.Finish()
		}
		dto := NewGameSessionDTO(s)
		s.Unlock()

		if err := c.WriteJSON(dto); err != nil {
			g.log.WithField("error", err).Error("ws write")
			break
		}
	}
}
