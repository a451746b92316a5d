package session

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"CartPilot/internal/lib/api/response"
	"CartPilot/internal/lib/sl"
	"CartPilot/journey"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type AdvanceRequest struct {
	Type          string `json:"type" validate:"required,oneof=next select_purchase_type select_store select_payment_method confirm_payment lookup_product free_text quick_reply toggle_more restart"`
	PurchaseType  string `json:"purchase_type,omitempty" validate:"omitempty,oneof=online offline"`
	StoreID       string `json:"store_id,omitempty" validate:"omitempty,max=16"`
	ProductID     string `json:"product_id,omitempty" validate:"omitempty,max=16"`
	PaymentMethod string `json:"payment_method,omitempty" validate:"omitempty,oneof=upi credit debit cod"`
	UpiID         string `json:"upi_id,omitempty" validate:"omitempty,max=64"`
	Text          string `json:"text,omitempty" validate:"omitempty,max=500"`
}

func Advance(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.session"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		var req AdvanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid advance request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid event"))
			return
		}

		ev := journey.Event{
			Type:          journey.EventType(req.Type),
			PurchaseType:  journey.PurchaseType(req.PurchaseType),
			StoreID:       req.StoreID,
			ProductID:     req.ProductID,
			PaymentMethod: journey.PaymentMethod(req.PaymentMethod),
			UpiID:         req.UpiID,
			Text:          req.Text,
		}

		snap, err := handler.AdvanceSession(id, ev)
		if err != nil {
			logger.Debug("advance rejected",
				slog.String("session_id", id),
				slog.String("event", req.Type),
				sl.Err(err),
			)
			renderError(w, r, err)
			return
		}

		logger.Debug("advance accepted",
			slog.String("session_id", id),
			slog.String("event", req.Type),
			slog.Int("cursor", snap.Cursor),
			slog.Bool("busy", snap.Busy),
		)
		render.JSON(w, r, response.Ok(snap))
	}
}
