package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"CartPilot/internal/config"
	"CartPilot/internal/http-server/handlers/catalog"
	"CartPilot/internal/http-server/handlers/errors"
	"CartPilot/internal/http-server/handlers/handoff"
	"CartPilot/internal/http-server/handlers/session"
	"CartPilot/internal/http-server/middleware/timeout"
	"CartPilot/internal/lib/sl"
	"CartPilot/internal/ws"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	session.Core
	catalog.Core
	handoff.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(timeout.Timeout(10))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/session", func(r chi.Router) {
			r.Post("/start", session.Start(log, handler))
			r.Get("/{id}", session.Snapshot(log, handler))
			r.Post("/{id}/advance", session.Advance(log, handler))
			r.Post("/{id}/reset", session.Reset(log, handler))
			r.Delete("/{id}", session.Close(log, handler))
		})
		v1.Route("/catalog", func(r chi.Router) {
			r.Get("/products", catalog.Products(log, handler))
			r.Get("/stores", catalog.Stores(log, handler))
		})
		v1.Route("/handoff", func(r chi.Router) {
			r.Get("/{kind}", handoff.Latest(log, handler))
			r.Post("/clear", handoff.Clear(log, handler))
		})
	})

	router.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWs(hub, log, w, r)
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
