package handoff

import (
	"log/slog"
	"net/http"

	"CartPilot/entity"
	"CartPilot/internal/lib/api/response"
	"CartPilot/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func Latest(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := entity.SideEffectKind(chi.URLParam(r, "kind"))
		if kind != entity.SideEffectOnlinePurchase && kind != entity.SideEffectOfflinePickup {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Unknown handoff kind"))
			return
		}

		rec, ok := handler.LatestHandoff(kind)
		if !ok {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("No record published"))
			return
		}

		log.With(sl.Module("http.handlers.handoff")).Debug("handoff read",
			slog.String("kind", string(kind)),
		)
		render.JSON(w, r, response.Ok(rec))
	}
}

// Clear drops all handoff records. Dashboard pages call it on full reload.
func Clear(_ *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler.ClearHandoff()
		render.JSON(w, r, response.Ok(nil))
	}
}
