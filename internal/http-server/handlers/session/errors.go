package session

import (
	"errors"
	"net/http"

	"CartPilot/internal/lib/api/response"
	svc "CartPilot/internal/service/session"
	"CartPilot/journey"

	"github.com/go-chi/render"
)

// renderError maps engine failure kinds onto HTTP statuses. Every engine
// failure leaves the session unchanged, so callers may simply retry.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, svc.ErrNotFound) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Session not found"))
		return
	}

	switch journey.KindOf(err) {
	case journey.ErrSessionBusy:
		render.Status(r, http.StatusConflict)
	case journey.ErrProductNotFound, journey.ErrNoMatchingCustomer:
		render.Status(r, http.StatusUnprocessableEntity)
	case journey.ErrIllegalTransition:
		render.Status(r, http.StatusBadRequest)
	default:
		render.Status(r, http.StatusInternalServerError)
	}
	render.JSON(w, r, response.Error(err.Error()))
}
