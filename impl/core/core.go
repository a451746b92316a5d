package core

import (
	"log/slog"

	"CartPilot/entity"
	"CartPilot/internal/lib/sl"
	"CartPilot/internal/service/session"
	"CartPilot/journey"
)

// SessionManager drives journey sessions.
type SessionManager interface {
	Start(kind journey.Kind) (*session.Snapshot, error)
	Advance(id string, ev journey.Event) (*session.Snapshot, error)
	Snapshot(id string) (*session.Snapshot, error)
	Reset(id string) (*session.Snapshot, error)
	Close(id string) error
}

// CatalogService exposes the static commerce data to the API surface.
type CatalogService interface {
	Products() []entity.Product
	Stores() []entity.Store
}

// HandoffStore reads the cross-page purchase records.
type HandoffStore interface {
	Latest(kind entity.SideEffectKind) (entity.SideEffectRecord, bool)
	Clear()
}

// Core is the application facade the HTTP handlers talk to.
type Core struct {
	log      *slog.Logger
	sessions SessionManager
	catalog  CatalogService
	handoff  HandoffStore
}

func New(log *slog.Logger) *Core {
	return &Core{
		log: log.With(sl.Module("impl.core")),
	}
}

func (c *Core) SetSessionManager(m SessionManager) {
	c.sessions = m
}

func (c *Core) SetCatalogService(s CatalogService) {
	c.catalog = s
}

func (c *Core) SetHandoffStore(h HandoffStore) {
	c.handoff = h
}

func (c *Core) StartSession(kind journey.Kind) (*session.Snapshot, error) {
	return c.sessions.Start(kind)
}

func (c *Core) AdvanceSession(id string, ev journey.Event) (*session.Snapshot, error) {
	return c.sessions.Advance(id, ev)
}

func (c *Core) SessionSnapshot(id string) (*session.Snapshot, error) {
	return c.sessions.Snapshot(id)
}

func (c *Core) ResetSession(id string) (*session.Snapshot, error) {
	return c.sessions.Reset(id)
}

func (c *Core) CloseSession(id string) error {
	return c.sessions.Close(id)
}

func (c *Core) Products() []entity.Product {
	return c.catalog.Products()
}

func (c *Core) Stores() []entity.Store {
	return c.catalog.Stores()
}

func (c *Core) LatestHandoff(kind entity.SideEffectKind) (entity.SideEffectRecord, bool) {
	return c.handoff.Latest(kind)
}

func (c *Core) ClearHandoff() {
	c.handoff.Clear()
}
