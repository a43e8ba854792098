package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-core/internal/command"
	"github.com/vancomm/minesweeper-core/internal/mines"
)

// ConnectWS streams a game over a websocket. Every text message is a batch
// of commands; the reply is the game after the batch, or the batch error.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s := g.lookup(w, r)
	if s == nil {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("upgrade failed")
		return
	}
	defer c.Close()

	log := g.log.WithField("session", s.ID.String())
	log.Debug("websocket connected")

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read")
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		log.Debug("\t> ", string(message))

		var reply any
		snap, err := s.Do(func(game *mines.Game) error {
			return command.ApplyBatch(game, string(message))
		})
		var berr *command.BatchError
		switch {
		case errors.As(err, &berr):
			reply = &BatchErrorDTO{Line: berr.Line, Error: berr.Err.Error()}
		case err != nil:
			log.WithError(err).Error("unable to apply batch")
			return
		default:
			reply = NewGameDTO(s.ID.String(), snap)
			if snap.Status.Over() {
				log.WithFields(logrus.Fields{"status": snap.Status.String()}).Info("game over")
			}
		}

		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("write")
			break
		}
	}
}
