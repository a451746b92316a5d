package handoff

import "CartPilot/entity"

type Core interface {
	LatestHandoff(kind entity.SideEffectKind) (entity.SideEffectRecord, bool)
	ClearHandoff()
}
