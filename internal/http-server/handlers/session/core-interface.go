package session

import (
	svc "CartPilot/internal/service/session"
	"CartPilot/journey"
)

type Core interface {
	StartSession(kind journey.Kind) (*svc.Snapshot, error)
	AdvanceSession(id string, ev journey.Event) (*svc.Snapshot, error)
	SessionSnapshot(id string) (*svc.Snapshot, error)
	ResetSession(id string) (*svc.Snapshot, error)
	CloseSession(id string) error
}
