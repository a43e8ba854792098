package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-core/internal/command"
	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/middleware"
	"github.com/vancomm/minesweeper-core/internal/mines"
	"github.com/vancomm/minesweeper-core/internal/session"
	"github.com/vancomm/minesweeper-core/internal/ticket"
)

const maxBatchBytes = 64 << 10

type GameHandler struct {
	log      logrus.FieldLogger
	store    *session.Store
	tickets  *ticket.Issuer
	ws       *config.WebSocket
	defaults mines.GameParams
}

func NewGameHandler(
	log logrus.FieldLogger,
	store *session.Store,
	tickets *ticket.Issuer,
	ws *config.WebSocket,
	defaults mines.GameParams,
) *GameHandler {
	handler := &GameHandler{
		log:      log,
		store:    store,
		tickets:  tickets,
		ws:       ws,
		defaults: defaults,
	}

	return handler
}

// lookup resolves the {id} path value to a session the caller holds a
// ticket for. It writes the error response itself and returns nil when the
// request cannot go on.
func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request) *session.Session {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil
	}

	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return nil
	}
	if claims.SessionID() != id.String() {
		w.WriteHeader(http.StatusForbidden)
		return nil
	}

	s, err := g.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return nil
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session")
		return nil
	}
	return s
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	params := dto.Params(g.defaults)
	s, err := g.store.Create(params)
	if errors.Is(err, mines.ErrInvalidConfiguration) {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create a game session")
		return
	}

	token, err := g.tickets.Issue(s.ID.String())
	if err != nil {
		_ = g.store.Delete(s.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to issue a ticket")
		return
	}

	g.log.WithFields(logrus.Fields{
		"session": s.ID.String(),
		"params":  params.String(),
	}).Info("game created")

	sendJSONOrLog(w, g.log, http.StatusCreated, &CreatedGameDTO{
		Game:   NewGameDTO(s.ID.String(), s.Snapshot()),
		Ticket: token,
	})
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s := g.lookup(w, r)
	if s == nil {
		return
	}
	sendJSONOrLog(w, g.log, http.StatusOK, NewGameDTO(s.ID.String(), s.Snapshot()))
}

// move returns a handler applying a reveal or flag command at the row and
// col query parameters.
func (g GameHandler) move(kind command.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pos, err := ParsePositionDTO(r.URL.Query())
		if err != nil {
			sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
			return
		}
		s := g.lookup(w, r)
		if s == nil {
			return
		}

		c := command.Command{Kind: kind, Row: pos.Row, Col: pos.Col}
		snap, err := s.Do(func(game *mines.Game) error {
			_, err := c.Apply(game)
			return err
		})
		if errors.Is(err, command.ErrBadCoordinates) {
			sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
			return
		}
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			g.log.WithError(err).Error("unable to apply command")
			return
		}

		g.logOutcome(s, c, snap)
		sendJSONOrLog(w, g.log, http.StatusOK, NewGameDTO(s.ID.String(), snap))
	}
}

func (g GameHandler) Open(w http.ResponseWriter, r *http.Request) {
	g.move(command.Open)(w, r)
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.move(command.Flag)(w, r)
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s := g.lookup(w, r)
	if s == nil {
		return
	}
	snap, _ := s.Do(func(game *mines.Game) error {
		game.Reset()
		return nil
	})
	sendJSONOrLog(w, g.log, http.StatusOK, NewGameDTO(s.ID.String(), snap))
}

func (g GameHandler) Batch(w http.ResponseWriter, r *http.Request) {
	s := g.lookup(w, r)
	if s == nil {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBytes))
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusRequestEntityTooLarge, err)
		return
	}

	snap, err := s.Do(func(game *mines.Game) error {
		return command.ApplyBatch(game, string(body))
	})
	var berr *command.BatchError
	if errors.As(err, &berr) {
		sendJSONOrLog(w, g.log, http.StatusBadRequest, &BatchErrorDTO{
			Line:  berr.Line,
			Error: berr.Err.Error(),
		})
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to apply batch")
		return
	}

	sendJSONOrLog(w, g.log, http.StatusOK, NewGameDTO(s.ID.String(), snap))
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s := g.lookup(w, r)
	if s == nil {
		return
	}
	if err := g.store.Delete(s.ID); errors.Is(err, session.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (g GameHandler) logOutcome(s *session.Session, c command.Command, snap mines.Snapshot) {
	if !snap.Status.Over() {
		return
	}
	g.log.WithFields(logrus.Fields{
		"session": s.ID.String(),
		"command": c.String(),
		"status":  snap.Status.String(),
	}).Info("game over")
}
