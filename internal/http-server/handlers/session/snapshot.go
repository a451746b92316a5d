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

func Snapshot(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.session"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		snap, err := handler.SessionSnapshot(id)
		if err != nil {
			logger.Debug("snapshot", slog.String("session_id", id), sl.Err(err))
			renderError(w, r, err)
			return
		}

		render.JSON(w, r, response.Ok(snap))
	}
}
