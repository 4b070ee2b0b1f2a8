package server

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/they4kman/sweepcore/game"
)

// Server hosts one session per websocket connection, plus a map generator
type Server struct {
	config   game.Config
	router   *way.Router
	upgrader *websocket.Upgrader
}

func NewServer(config game.Config) *Server {
	server := &Server{
		config:   config,
		upgrader: &websocket.Upgrader{},
	}
	server.routes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) HandlePlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		options, err := s.boardOptions(query.Get("width"), query.Get("height"), query.Get("mines"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		seed, err := s.seed(query)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		session, err := game.NewSession(options, s.config.Window, seed)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			// The upgrader already replied
			log.WithError(err).Warn("Websocket upgrade failed")
			return
		}
		defer conn.Close()

		log.WithFields(log.Fields{
			"remote": r.RemoteAddr,
			"seed":   seed,
		}).Info("Player connected")

		newPlayer(conn, session).loop()

		log.WithFields(log.Fields{
			"remote": r.RemoteAddr,
			"state":  session.State(),
		}).Info("Player disconnected")
	}
}

// HandleGenerate replies with the snapshot of a fresh map
func (s *Server) HandleGenerate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		options, err := s.boardOptions(way.Param(ctx, "width"), way.Param(ctx, "height"), way.Param(ctx, "mines"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		options.SafeStart = false

		seed, err := s.seed(r.URL.Query())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		session, err := game.NewSession(options, s.config.Window, seed)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		out, err := session.Snapshot().Serialize()
		if err != nil {
			log.WithError(err).Error("Could not serialize snapshot")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/x-yaml")
		if _, err := w.Write([]byte(out)); err != nil {
			log.WithError(err).Warn("Could not write snapshot")
		}
	}
}

// boardOptions overrides the configured board with any dimension given
func (s *Server) boardOptions(width, height, mines string) (game.BoardOptions, error) {
	options := s.config.Board

	for _, param := range []struct {
		name  string
		value string
		into  *uint16
	}{
		{"width", width, &options.Width},
		{"height", height, &options.Height},
		{"mines", mines, &options.BombCount},
	} {
		if param.value == "" {
			continue
		}
		value, err := strconv.ParseUint(param.value, 10, 16)
		if err != nil {
			return options, errors.Wrapf(err, "invalid %s", param.name)
		}
		*param.into = uint16(value)
	}

	return options, options.Validate()
}

func (s *Server) seed(query url.Values) (int64, error) {
	if value := query.Get("seed"); value != "" {
		seed, err := strconv.ParseInt(value, 10, 64)
		return seed, errors.Wrap(err, "invalid seed")
	}
	if s.config.Seed != 0 {
		return s.config.Seed, nil
	}
	return time.Now().UnixNano(), nil
}
