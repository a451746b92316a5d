package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"CartPilot/entity"
	"CartPilot/internal/lib/sl"
	"CartPilot/journey"

	"github.com/google/uuid"
)

// ErrNotFound is returned for an unknown or closed session id.
var ErrNotFound = errors.New("session not found")

// Publisher receives side-effect records from completed purchase branches.
type Publisher interface {
	Publish(rec entity.SideEffectRecord)
}

// Broadcaster pushes committed steps to live subscribers (dashboards).
type Broadcaster interface {
	BroadcastStep(sessionID string, kind journey.Kind, step entity.ExecutedStep)
}

// Snapshot is a caller-owned copy of a session's visible state.
type Snapshot struct {
	SessionID     string                `json:"session_id"`
	Journey       journey.Kind          `json:"journey"`
	Cursor        int                   `json:"cursor"`
	Complete      bool                  `json:"complete"`
	Busy          bool                  `json:"busy"`
	BusyMessage   string                `json:"busy_message,omitempty"`
	PurchaseType  journey.PurchaseType  `json:"purchase_type,omitempty"`
	PaymentMethod journey.PaymentMethod `json:"payment_method,omitempty"`
	Store         *entity.Store         `json:"store,omitempty"`
	Product       *entity.Product       `json:"product,omitempty"`
	OrderID       string                `json:"order_id,omitempty"`
	Log           []entity.ExecutedStep `json:"log"`
}

type session struct {
	id     string
	mu     sync.Mutex
	state  *journey.State
	gen    int
	ctx    context.Context
	cancel context.CancelFunc
}

// Manager owns all live sessions and serializes their mutations. The engine
// stays pure; every state change goes through here, guarded by the per
// session mutex and the busy flag.
type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*session
	engine      *journey.Engine
	executor    journey.StepExecutor
	publisher   Publisher
	broadcaster Broadcaster
	log         *slog.Logger
}

// NewManager creates a session manager.
func NewManager(engine *journey.Engine, executor journey.StepExecutor, publisher Publisher, log *slog.Logger) *Manager {
	return &Manager{
		sessions:  make(map[string]*session),
		engine:    engine,
		executor:  executor,
		publisher: publisher,
		log:       log.With(sl.Module("service.session")),
	}
}

// SetBroadcaster attaches a live-event subscriber. Optional.
func (m *Manager) SetBroadcaster(b Broadcaster) {
	m.broadcaster = b
}

// Start creates a fresh session for a journey kind.
func (m *Manager) Start(kind journey.Kind) (*Snapshot, error) {
	if _, ok := journey.ParseKind(string(kind)); !ok {
		return nil, &journey.Error{Kind: journey.ErrIllegalTransition, Message: "unknown journey kind " + string(kind)}
	}

	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		id:     uuid.NewString(),
		state:  journey.NewState(kind),
		ctx:    ctx,
		cancel: cancel,
	}

	m.mu.Lock()
	m.sessions[sess.id] = sess
	m.mu.Unlock()

	m.log.Info("session started",
		slog.String("session_id", sess.id),
		slog.String("journey", string(kind)),
	)

	return m.snapshotLocked(sess), nil
}

// Advance applies a user event to a session. While a simulated step is in
// flight the session is busy and further events are rejected; the log append
// and cursor update commit together when the executor fires.
func (m *Manager) Advance(id string, ev journey.Event) (*Snapshot, error) {
	sess, err := m.get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if sess.state.Pending.Busy {
		sess.mu.Unlock()
		return nil, &journey.Error{Kind: journey.ErrSessionBusy, Message: "a step is already in flight"}
	}

	tr, err := m.engine.Advance(sess.state, ev)
	if err != nil {
		sess.mu.Unlock()
		return nil, err
	}

	// Instant transitions (sub-selections, restart) apply in place.
	if len(tr.Steps) == 0 {
		sess.state = tr.Next
		sess.mu.Unlock()
		return m.snapshotLocked(sess), nil
	}

	sess.state.Pending = journey.Pending{Busy: true, Message: tr.Busy}
	gen := sess.gen
	ctx := sess.ctx
	sess.mu.Unlock()

	// The side effect fires when the event is accepted, not when the
	// simulated latency elapses: on the offline branch store confirmation is
	// order placement.
	if tr.Record != nil && m.publisher != nil {
		m.publisher.Publish(*tr.Record)
	}

	m.executor.Schedule(ctx, tr.Delay, func() {
		m.commit(sess, gen, tr)
	})

	return m.snapshotLocked(sess), nil
}

// commit installs the transition's next state. A stale generation means the
// session was reset or closed while the step was in flight; the result is
// dropped.
func (m *Manager) commit(sess *session, gen int, tr *journey.Transition) {
	sess.mu.Lock()
	if sess.gen != gen {
		sess.mu.Unlock()
		return
	}
	tr.Next.Pending = journey.Pending{}
	sess.state = tr.Next
	sess.mu.Unlock()

	if m.broadcaster != nil {
		for _, step := range tr.Steps {
			m.broadcaster.BroadcastStep(sess.id, tr.Next.Kind, step)
		}
	}

	m.log.Debug("step committed",
		slog.String("session_id", sess.id),
		slog.Int("cursor", tr.Next.Cursor),
		slog.Int("log_len", len(tr.Next.Log)),
	)
}

// Snapshot returns the current visible state of a session.
func (m *Manager) Snapshot(id string) (*Snapshot, error) {
	sess, err := m.get(id)
	if err != nil {
		return nil, err
	}
	return m.snapshotLocked(sess), nil
}

// Reset tears the session's journey down to its initial state. Any in-flight
// step is cancelled and its result dropped. Published handoff records stay.
func (m *Manager) Reset(id string) (*Snapshot, error) {
	sess, err := m.get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	sess.gen++
	sess.cancel()
	sess.ctx, sess.cancel = context.WithCancel(context.Background())
	sess.state = journey.NewState(sess.state.Kind)
	sess.mu.Unlock()

	m.log.Info("session reset", slog.String("session_id", id))
	return m.snapshotLocked(sess), nil
}

// Close discards a session entirely (surface unmount).
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}

	sess.mu.Lock()
	sess.gen++
	sess.cancel()
	sess.mu.Unlock()

	m.log.Info("session closed", slog.String("session_id", id))
	return nil
}

func (m *Manager) get(id string) (*session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (m *Manager) snapshotLocked(sess *session) *Snapshot {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	st := sess.state.Clone()
	return &Snapshot{
		SessionID:     sess.id,
		Journey:       st.Kind,
		Cursor:        st.Cursor,
		Complete:      st.Complete(),
		Busy:          st.Pending.Busy,
		BusyMessage:   st.Pending.Message,
		PurchaseType:  st.PurchaseType,
		PaymentMethod: st.PaymentMethod,
		Store:         st.Store,
		Product:       st.Product,
		OrderID:       st.OrderID,
		Log:           st.Log,
	}
}
