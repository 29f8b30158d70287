package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/internal/runtime"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/ports"
	"github.com/aretw0/stencil/pkg/sketch"
)

// DefaultLockTTL bounds how long a distributed lock outlives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// ErrBusy is returned when a non-modal run is requested while a tool is running.
var ErrBusy = errors.New("a tool is already running")

// Factory builds scenes and operators. The root stencil.Toolkit implements it.
type Factory interface {
	NewScene(doc *sketch.Document) *sketch.Scene
	NewOperator(toolID string, scene *sketch.Scene) (*runtime.Operator, error)
}

// Info describes a session for listings and the HTTP API.
type Info struct {
	ID      string       `json:"id"`
	Tool    string       `json:"tool,omitempty"`
	Running bool         `json:"running"`
	Status  string       `json:"status,omitempty"`
	Stats   sketch.Stats `json:"stats"`
	History []string     `json:"history"`
}

type liveSession struct {
	scene    *sketch.Scene
	operator *runtime.Operator
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store   ports.DocumentStore
	factory Factory

	mu    sync.Mutex            // Global lock for the maps
	locks map[string]*lockEntry // Map of active locks
	live  map[string]*liveSession

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock expiry.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager with the given document store.
func NewManager(store ports.DocumentStore, factory Factory, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		factory: factory,
		locks:   make(map[string]*lockEntry),
		live:    make(map[string]*liveSession),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

func (m *Manager) lookup(id string) (*liveSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.live[id]
	return s, ok
}

// open returns the live session, loading its document on first use.
// Must be called under the session lock.
func (m *Manager) open(ctx context.Context, id string) (*liveSession, error) {
	if s, ok := m.lookup(id); ok {
		return s, nil
	}
	doc, err := m.store.Load(ctx, id)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		doc, err = sketch.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document %s: %w", id, err)
	}

	s := &liveSession{scene: m.factory.NewScene(doc)}
	m.mu.Lock()
	m.live[id] = s
	m.mu.Unlock()
	m.logger.Debug("session opened", "session_id", id)
	return s, nil
}

// commit persists the document once a run completed.
func (m *Manager) commit(ctx context.Context, id string, s *liveSession, rep domain.Report) error {
	if !rep.Result.Done() && !rep.Chained {
		return nil
	}
	if rep.Result.Done() {
		s.operator = nil
	}
	if err := m.store.Save(ctx, id, s.scene.Document()); err != nil {
		return fmt.Errorf("failed to save document %s: %w", id, err)
	}
	m.logger.Debug("document saved", "session_id", id, "result", rep.Result.String())
	return nil
}

// Invoke starts tool on the session with the triggering event. A tool still
// running on the session is cancelled first.
func (m *Manager) Invoke(ctx context.Context, id, tool string, ev domain.Event) (domain.Report, error) {
	var rep domain.Report
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		s, err := m.open(ctx, id)
		if err != nil {
			return err
		}
		if s.operator != nil && s.operator.Running() {
			if _, err := s.operator.Cancel(ctx); err != nil {
				return err
			}
		}
		op, err := m.factory.NewOperator(tool, s.scene)
		if err != nil {
			return err
		}
		s.operator = op
		rep, err = op.Invoke(ctx, ev)
		if err != nil {
			return err
		}
		return m.commit(ctx, id, s, rep)
	})
	return rep, err
}

// HandleEvent forwards ev to the running operator of the session.
// Returns domain.ErrNotRunning if no tool is running.
func (m *Manager) HandleEvent(ctx context.Context, id string, ev domain.Event) (domain.Report, error) {
	var rep domain.Report
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		s, ok := m.lookup(id)
		if !ok || s.operator == nil || !s.operator.Running() {
			return fmt.Errorf("session %s: %w", id, domain.ErrNotRunning)
		}
		var err error
		rep, err = s.operator.HandleEvent(ctx, ev)
		if err != nil {
			return err
		}
		return m.commit(ctx, id, s, rep)
	})
	return rep, err
}

// Execute runs tool on the session without events.
func (m *Manager) Execute(ctx context.Context, id, tool string, v runtime.Values) (domain.Report, error) {
	var rep domain.Report
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		s, err := m.open(ctx, id)
		if err != nil {
			return err
		}
		if s.operator != nil && s.operator.Running() {
			return fmt.Errorf("session %s: %w", id, ErrBusy)
		}
		op, err := m.factory.NewOperator(tool, s.scene)
		if err != nil {
			return err
		}
		rep, err = op.Execute(ctx, v)
		if err != nil {
			return err
		}
		return m.commit(ctx, id, s, rep)
	})
	return rep, err
}

// Cancel aborts the running tool of the session, if any.
func (m *Manager) Cancel(ctx context.Context, id string) (domain.Report, error) {
	var rep domain.Report
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		s, ok := m.lookup(id)
		if !ok || s.operator == nil || !s.operator.Running() {
			return fmt.Errorf("session %s: %w", id, domain.ErrNotRunning)
		}
		var err error
		rep, err = s.operator.Cancel(ctx)
		s.operator = nil
		return err
	})
	return rep, err
}

// Select adds p to the session's selection, for tools that prefill from it.
func (m *Manager) Select(ctx context.Context, id string, p domain.ImplicitPointer) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		s, err := m.open(ctx, id)
		if err != nil {
			return err
		}
		if _, ok := s.scene.Resolve(p); !ok {
			return fmt.Errorf("select %s: %w", p, domain.ErrUnknownElement)
		}
		s.scene.Select(p)
		return nil
	})
}

// Open loads the session into memory, starting an empty document when the
// store has none.
func (m *Manager) Open(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		_, err := m.open(ctx, id)
		return err
	})
}

// Info describes the session. Sessions that are not open are read from the store.
func (m *Manager) Info(ctx context.Context, id string) (Info, error) {
	var info Info
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		info = Info{ID: id}
		s, ok := m.lookup(id)
		if !ok {
			doc, err := m.store.Load(ctx, id)
			if err != nil {
				return err
			}
			info.Stats = doc.Stats()
			info.History = []string{}
			return nil
		}
		info.Stats = s.scene.Document().Stats()
		info.History = s.scene.History().Labels()
		info.Status = s.scene.Status()
		if s.operator != nil && s.operator.Running() {
			info.Running = true
			info.Tool = s.operator.Tool().ID
		}
		return nil
	})
	return info, err
}

// Document returns a copy of the session's document.
func (m *Manager) Document(ctx context.Context, id string) (*sketch.Document, error) {
	var doc *sketch.Document
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		if s, ok := m.lookup(id); ok {
			doc = s.scene.Document().Clone()
			return nil
		}
		var err error
		doc, err = m.store.Load(ctx, id)
		return err
	})
	return doc, err
}

// Close cancels any running tool, saves the document and forgets the session.
func (m *Manager) Close(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		s, ok := m.lookup(id)
		if !ok {
			return nil
		}
		if s.operator != nil && s.operator.Running() {
			if _, err := s.operator.Cancel(ctx); err != nil {
				return err
			}
		}
		m.mu.Lock()
		delete(m.live, id)
		m.mu.Unlock()
		if err := m.store.Save(ctx, id, s.scene.Document()); err != nil {
			return fmt.Errorf("failed to save document %s: %w", id, err)
		}
		return nil
	})
}

// Delete forgets the session and removes its document from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		m.mu.Lock()
		delete(m.live, id)
		m.mu.Unlock()
		return m.store.Delete(ctx, id)
	})
}

// List returns stored and open session ids.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	ids, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	m.mu.Lock()
	for id := range m.live {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	m.mu.Unlock()
	sort.Strings(ids)
	return ids, nil
}

// Store returns the underlying document store.
func (m *Manager) Store() ports.DocumentStore {
	return m.store
}
