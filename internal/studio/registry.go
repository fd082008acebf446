package studio

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/logger"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/getsentry/sentry-go"
)

const saveTimeout = 5 * time.Second

// SnapshotStore persists the last snapshot of each client
type SnapshotStore interface {
	Load(ctx context.Context, clientID string) (models.Snapshot, error)
	Save(ctx context.Context, clientID string, snap models.Snapshot) error
}

// Registry hands out one Controller per client id. Controllers idle for longer
// than Options.IdleTTL are evicted; their inputs and locks survive in the store.
type Registry struct {
	store     SnapshotStore
	generator Generator
	suggester Suggester
	opts      Options
	notFound  error

	mu          sync.Mutex
	controllers map[string]*Controller
	lastSeen    map[string]time.Time

	stop     chan struct{}
	stopOnce sync.Once
	sweeper  sync.WaitGroup
}

// NewRegistry creates a registry. store may be nil, in which case sessions live
// only in memory. notFound is the store's sentinel for a missing session.
// A positive opts.IdleTTL starts the idle sweeper; Close stops it.
func NewRegistry(store SnapshotStore, notFound error, gen Generator, sug Suggester, opts Options) *Registry {
	r := &Registry{
		store:       store,
		generator:   gen,
		suggester:   sug,
		opts:        opts,
		notFound:    notFound,
		controllers: make(map[string]*Controller),
		lastSeen:    make(map[string]time.Time),
		stop:        make(chan struct{}),
	}
	if opts.IdleTTL > 0 {
		interval := opts.SweepInterval
		if interval <= 0 {
			interval = opts.IdleTTL / 2
		}
		r.sweeper.Add(1)
		go r.sweepLoop(interval)
	}
	return r
}

// Get returns the client's controller, creating it from the stored session or
// the initial state on first access. The store is read without holding the
// registry lock.
func (r *Registry) Get(ctx context.Context, clientID string) *Controller {
	if c, ok := r.lookup(clientID); ok {
		return c
	}

	snap := r.load(ctx, clientID)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastSeen[clientID] = time.Now()
	if c, ok := r.controllers[clientID]; ok {
		return c
	}

	opts := r.opts
	opts.OnChange = r.save
	c := NewController(clientID, snap, r.generator, r.suggester, opts)
	r.controllers[clientID] = c
	return c
}

func (r *Registry) lookup(clientID string) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.controllers[clientID]
	if ok {
		r.lastSeen[clientID] = time.Now()
	}
	return c, ok
}

// Sweep evicts every controller not accessed since now-IdleTTL, skipping those
// with a generation in flight. It returns the number evicted.
func (r *Registry) Sweep(now time.Time) int {
	if r.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-r.opts.IdleTTL)

	r.mu.Lock()
	var idle []*Controller
	for id, c := range r.controllers {
		if r.lastSeen[id].After(cutoff) || c.Busy() {
			continue
		}
		idle = append(idle, c)
		delete(r.controllers, id)
		delete(r.lastSeen, id)
	}
	r.mu.Unlock()

	for _, c := range idle {
		c.Close()
	}
	if len(idle) > 0 {
		logger.Debug("Evicted idle clients", logger.Fields{"evicted": len(idle)})
	}
	return len(idle)
}

func (r *Registry) sweepLoop(interval time.Duration) {
	defer r.sweeper.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

// Evict stops and forgets a client's controller
func (r *Registry) Evict(clientID string) {
	r.mu.Lock()
	c, ok := r.controllers[clientID]
	delete(r.controllers, clientID)
	delete(r.lastSeen, clientID)
	r.mu.Unlock()

	if ok {
		c.Close()
	}
}

// Len returns the number of live controllers
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Close stops the sweeper and every controller's timers
func (r *Registry) Close() {
	r.stopOnce.Do(func() { close(r.stop) })
	r.sweeper.Wait()

	r.mu.Lock()
	controllers := r.controllers
	r.controllers = make(map[string]*Controller)
	r.lastSeen = make(map[string]time.Time)
	r.mu.Unlock()

	for _, c := range controllers {
		c.Close()
	}
}

func (r *Registry) load(ctx context.Context, clientID string) models.Snapshot {
	initial := models.Snapshot{Inputs: models.InitialFormState(), LockedFields: models.LockMap{}}
	if r.store == nil {
		return initial
	}
	snap, err := r.store.Load(ctx, clientID)
	if err != nil {
		if r.notFound == nil || !errors.Is(err, r.notFound) {
			fields := logger.Fields{
				"client_id": clientID,
				"error":     err.Error(),
			}
			logger.Warn("Ignoring unreadable stored session", fields)
			logger.LogToSentry(sentry.LevelWarning, "Unreadable stored session", fields)
		}
		return initial
	}
	return snap
}

func (r *Registry) save(clientID string, snap models.Snapshot) {
	if r.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := r.store.Save(ctx, clientID, snap); err != nil {
		logger.Error("Failed to save session", err, logger.Fields{"client_id": clientID})
	}
}
