package session

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"CartPilot/internal/lib/api/response"
	"CartPilot/internal/lib/sl"
	"CartPilot/journey"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type StartRequest struct {
	Journey string `json:"journey" validate:"required,oneof=customer_online customer_offline storekeeper messenger"`
}

func Start(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.session"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req StartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid start request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid journey kind"))
			return
		}

		kind, _ := journey.ParseKind(req.Journey)
		snap, err := handler.StartSession(kind)
		if err != nil {
			logger.Error("start session", sl.Err(err))
			renderError(w, r, err)
			return
		}

		logger.Debug("session started", slog.String("session_id", snap.SessionID))
		render.JSON(w, r, response.Ok(snap))
	}
}
