package handoff

import (
	"log/slog"
	"sync"

	"CartPilot/entity"
	"CartPilot/internal/lib/sl"
)

// Store is the session-scoped cross-page handoff: at most one side-effect
// record per kind, overwritten on every publish. External pages (profile,
// store dashboard) read the latest record; there is no stronger delivery
// guarantee than "latest write visible to subsequent reads".
type Store struct {
	mu      sync.RWMutex
	records map[entity.SideEffectKind]entity.SideEffectRecord
	subs    []func(entity.SideEffectRecord)
	log     *slog.Logger
}

func NewStore(log *slog.Logger) *Store {
	return &Store{
		records: make(map[entity.SideEffectKind]entity.SideEffectRecord),
		log:     log.With(sl.Module("service.handoff")),
	}
}

// Publish stores the record, replacing any prior record of the same kind,
// and notifies subscribers.
func (s *Store) Publish(rec entity.SideEffectRecord) {
	s.mu.Lock()
	s.records[rec.Type] = rec
	subs := make([]func(entity.SideEffectRecord), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.log.Info("side effect published",
		slog.String("kind", string(rec.Type)),
		slog.String("product", rec.Product.ID),
		slog.String("user_id", rec.UserID),
	)

	for _, fn := range subs {
		fn(rec)
	}
}

// Latest returns the current record for a kind, if any.
func (s *Store) Latest(kind entity.SideEffectKind) (entity.SideEffectRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[kind]
	return rec, ok
}

// Subscribe registers a callback invoked on every publish. Callbacks run on
// the publishing goroutine and must not block.
func (s *Store) Subscribe(fn func(entity.SideEffectRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Clear drops all records. External collaborators call this on a full page
// reload; the engine itself never does.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[entity.SideEffectKind]entity.SideEffectRecord)
}
