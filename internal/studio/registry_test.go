package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

type memoryStore struct {
	mu    sync.Mutex
	snaps map[string]models.Snapshot
	saves int
}

func (m *memoryStore) Load(_ context.Context, clientID string) (models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.snaps[clientID]
	if !ok {
		return models.Snapshot{}, errMissing
	}
	return snap, nil
}

func (m *memoryStore) Save(_ context.Context, clientID string, snap models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[clientID] = snap
	m.saves++
	return nil
}

func TestRegistryLoadsStoredSession(t *testing.T) {
	stored := models.Snapshot{Inputs: models.EmptyFormState(), LockedFields: models.LockMap{models.FieldGenre: true}}
	stored.Inputs.Genre = "Bebop"
	store := &memoryStore{snaps: map[string]models.Snapshot{"known": stored}}

	r := NewRegistry(store, errMissing, &fakeGenerator{}, &fakeSuggester{}, Options{SuggestionDebounce: time.Hour})
	defer r.Close()

	known := r.Get(context.Background(), "known")
	assert.Equal(t, "Bebop", known.State().Inputs.Genre)
	assert.True(t, known.State().Locks.IsLocked(models.FieldGenre))

	fresh := r.Get(context.Background(), "new")
	assert.Equal(t, models.InitialFormState().Genre, fresh.State().Inputs.Genre)

	assert.Same(t, known, r.Get(context.Background(), "known"))
	assert.Equal(t, 2, r.Len())
}

func TestRegistrySavesOnChange(t *testing.T) {
	store := &memoryStore{snaps: map[string]models.Snapshot{}}
	r := NewRegistry(store, errMissing, &fakeGenerator{}, &fakeSuggester{}, Options{SuggestionDebounce: time.Hour})
	defer r.Close()

	c := r.Get(context.Background(), "abc")
	theme := "Neon rain"
	c.EditInputs(models.FormPatch{Theme: &theme})

	snap, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Neon rain", snap.Inputs.Theme)
	assert.Equal(t, 1, store.saves)
}

func TestRegistryWithoutStore(t *testing.T) {
	r := NewRegistry(nil, nil, &fakeGenerator{}, &fakeSuggester{}, Options{SuggestionDebounce: time.Hour})
	c := r.Get(context.Background(), "x")
	c.ClearLyrics()

	r.Evict("x")
	assert.Equal(t, 0, r.Len())
	assert.NotSame(t, c, r.Get(context.Background(), "x"))
	r.Close()
	assert.Equal(t, 0, r.Len())
}

func TestRegistrySweepEvictsIdleClients(t *testing.T) {
	sug := &fakeSuggester{}
	r := NewRegistry(nil, nil, &fakeGenerator{}, sug, Options{
		SuggestionDebounce: time.Millisecond,
		IdleTTL:            time.Minute,
		SweepInterval:      time.Hour,
	})
	defer r.Close()

	for i := 0; i < 100; i++ {
		r.Get(context.Background(), fmt.Sprintf("anon-%d", i))
	}
	require.Equal(t, 100, r.Len())

	assert.Equal(t, 0, r.Sweep(time.Now()), "recently used clients stay")
	assert.Equal(t, 100, r.Sweep(time.Now().Add(2*time.Minute)))
	assert.Equal(t, 0, r.Len())

	// New controllers schedule nothing on their own
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, sug.calls.Load())
}

func TestRegistrySweepKeepsBusyClients(t *testing.T) {
	gen := &fakeGenerator{block: make(chan struct{})}
	r := NewRegistry(nil, nil, gen, &fakeSuggester{}, Options{
		SuggestionDebounce: time.Hour,
		IdleTTL:            time.Minute,
		SweepInterval:      time.Hour,
	})
	defer r.Close()

	c := r.Get(context.Background(), "busy")
	r.Get(context.Background(), "idle")

	done := make(chan struct{})
	go func() {
		c.GeneratePrompts(context.Background())
		close(done)
	}()
	require.Eventually(t, c.Busy, time.Second, time.Millisecond)

	assert.Equal(t, 1, r.Sweep(time.Now().Add(2*time.Minute)))
	assert.Same(t, c, r.Get(context.Background(), "busy"))

	close(gen.block)
	<-done
}

func TestRegistrySweeperRunsInBackground(t *testing.T) {
	r := NewRegistry(nil, nil, &fakeGenerator{}, &fakeSuggester{}, Options{
		SuggestionDebounce: time.Hour,
		IdleTTL:            20 * time.Millisecond,
		SweepInterval:      5 * time.Millisecond,
	})
	defer r.Close()

	r.Get(context.Background(), "a")
	r.Get(context.Background(), "b")
	assert.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, 5*time.Millisecond)

	r.Close()
	r.Close()
}

func TestRegistryEvictedSessionReloadsFromStore(t *testing.T) {
	store := &memoryStore{snaps: map[string]models.Snapshot{}}
	r := NewRegistry(store, errMissing, &fakeGenerator{}, &fakeSuggester{}, Options{
		SuggestionDebounce: time.Hour,
		IdleTTL:            time.Minute,
		SweepInterval:      time.Hour,
	})
	defer r.Close()

	theme := "Desert highway"
	r.Get(context.Background(), "abc").EditInputs(models.FormPatch{Theme: &theme})
	require.Equal(t, 1, r.Sweep(time.Now().Add(time.Hour)))

	assert.Equal(t, "Desert highway", r.Get(context.Background(), "abc").State().Inputs.Theme)
}

// blockingStore holds Load for one client until released
type blockingStore struct {
	memoryStore
	slowID  string
	started chan struct{}
	release chan struct{}
	loads   atomic.Int32
}

func (b *blockingStore) Load(ctx context.Context, clientID string) (models.Snapshot, error) {
	b.loads.Add(1)
	if clientID == b.slowID {
		b.started <- struct{}{}
		<-b.release
	}
	return b.memoryStore.Load(ctx, clientID)
}

func TestRegistryLoadDoesNotBlockOtherClients(t *testing.T) {
	store := &blockingStore{
		memoryStore: memoryStore{snaps: map[string]models.Snapshot{}},
		slowID:      "slow",
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	r := NewRegistry(store, errMissing, &fakeGenerator{}, &fakeSuggester{}, Options{SuggestionDebounce: time.Hour})
	defer r.Close()

	slow := make(chan *Controller)
	go func() { slow <- r.Get(context.Background(), "slow") }()
	<-store.started

	fast := make(chan *Controller)
	go func() { fast <- r.Get(context.Background(), "fast") }()
	select {
	case c := <-fast:
		assert.Equal(t, "fast", c.ClientID())
	case <-time.After(time.Second):
		t.Fatal("a slow load blocked another client")
	}

	close(store.release)
	c := <-slow
	assert.Same(t, c, r.Get(context.Background(), "slow"))
	assert.Equal(t, 2, r.Len())
}

func TestRegistryConcurrentFirstAccessSharesController(t *testing.T) {
	r := NewRegistry(&memoryStore{snaps: map[string]models.Snapshot{}}, errMissing, &fakeGenerator{}, &fakeSuggester{}, Options{SuggestionDebounce: time.Hour})
	defer r.Close()

	var wg sync.WaitGroup
	got := make([]*Controller, 8)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = r.Get(context.Background(), "same")
		}(i)
	}
	wg.Wait()

	for _, c := range got {
		assert.Same(t, got[0], c)
	}
	assert.Equal(t, 1, r.Len())
}
