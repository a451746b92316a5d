package journey

import (
	"time"

	"CartPilot/entity"
)

// Pending tracks the simulated in-flight step. At most one transition may be
// pending per session.
type Pending struct {
	Busy    bool   `json:"busy"`
	Message string `json:"message,omitempty"`
}

// State is the mutable record of where a single session is in its journey.
// The engine treats it as read-only input: Advance returns a fresh copy and
// the session layer decides when to commit it.
type State struct {
	Kind          Kind                  `json:"kind"`
	Cursor        int                   `json:"cursor"`
	Log           []entity.ExecutedStep `json:"log"`
	PurchaseType  PurchaseType          `json:"purchase_type,omitempty"`
	Store         *entity.Store         `json:"store,omitempty"`
	Product       *entity.Product       `json:"product,omitempty"`
	PaymentMethod PaymentMethod         `json:"payment_method,omitempty"`
	OrderID       string                `json:"order_id,omitempty"`
	MoreShown     bool                  `json:"more_shown,omitempty"`
	Pending       Pending               `json:"pending"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// NewState creates a fresh session state at the start of a journey.
func NewState(kind Kind) *State {
	return &State{
		Kind:      kind,
		UpdatedAt: time.Now(),
	}
}

// Complete reports whether the journey reached the end of its catalog. The
// messenger journey never completes.
func (s *State) Complete() bool {
	if s.Kind == KindMessenger {
		return false
	}
	return s.Cursor >= len(StepsFor(s.Kind))
}

// Clone returns a deep enough copy for the engine to build the next state on:
// the log slice is copied, selections are value copies.
func (s *State) Clone() *State {
	next := *s
	next.Log = make([]entity.ExecutedStep, len(s.Log), len(s.Log)+1)
	copy(next.Log, s.Log)
	if s.Store != nil {
		store := *s.Store
		next.Store = &store
	}
	if s.Product != nil {
		product := *s.Product
		next.Product = &product
	}
	return &next
}
