package session

import (
	"log/slog"
	"net/http"

	"CartPilot/internal/lib/api/response"
	"CartPilot/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Reset(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.session"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		snap, err := handler.ResetSession(id)
		if err != nil {
			logger.Debug("reset", slog.String("session_id", id), sl.Err(err))
			renderError(w, r, err)
			return
		}

		logger.Info("session reset", slog.String("session_id", id))
		render.JSON(w, r, response.Ok(snap))
	}
}

func Close(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.session"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		if err := handler.CloseSession(id); err != nil {
			logger.Debug("close", slog.String("session_id", id), sl.Err(err))
			renderError(w, r, err)
			return
		}

		render.JSON(w, r, response.Ok(nil))
	}
}
