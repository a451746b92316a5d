package catalog

import (
	"log/slog"
	"net/http"

	"CartPilot/internal/lib/api/response"

	"github.com/go-chi/render"
)

func Products(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(handler.Products()))
	}
}

func Stores(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(handler.Stores()))
	}
}
