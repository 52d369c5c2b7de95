// Package session holds per-learner progression state in memory with a
// per-entity mutation lock, so concurrent update cycles for one learner
// serialize while distinct learners proceed in parallel.
package session

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/adaptivepath/progression/go-engine/internal/phase"
)

// ErrContention is returned when the per-entity lock cannot be acquired
// within the store's wait bound. The call is safe to retry; no prior
// update is lost or corrupted.
var ErrContention = errors.New("session: entity lock contended")

// shardCount spreads entities across independent maps so the store does
// not funnel tens of concurrent learners through one mutex.
const shardCount = 32

// DefaultLockWait bounds how long Update blocks on a contended entity.
const DefaultLockWait = 250 * time.Millisecond

// #region store

// Store is a sharded, concurrency-safe keyed store of learner sessions.
// The shard mutex guards map access and session values; the per-entry
// channel lock serializes whole read-modify-write cycles so the shard
// mutex is never held across a caller's mutator.
type Store struct {
	shards   [shardCount]shard
	lockWait time.Duration
	clock    func() time.Time
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	lock chan struct{} // capacity 1; held for the span of one update cycle
	sess Session       // guarded by the owning shard's mu
}

// NewStore creates an empty store. lockWait <= 0 uses DefaultLockWait.
func NewStore(lockWait time.Duration) *Store {
	if lockWait <= 0 {
		lockWait = DefaultLockWait
	}
	s := &Store{lockWait: lockWait, clock: time.Now}
	for i := range s.shards {
		s.shards[i].entries = make(map[string]*entry)
	}
	return s
}

// #endregion store

// #region get-or-init

// GetOrInit returns a snapshot of the entity's session, creating a
// neutral one (state 0.5, first phase) on first reference.
func (s *Store) GetOrInit(entityID string) Session {
	sh := s.shardFor(entityID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return s.entryLocked(sh, entityID).sess
}

// #endregion get-or-init

// #region update

// Update applies fn to the entity's session under its per-entity lock
// and returns the resulting snapshot. Concurrent updates for the same
// entity apply as if fully sequential; updates for distinct entities do
// not block each other. A lock wait past the bound returns ErrContention.
func (s *Store) Update(entityID string, fn func(*Session)) (Session, error) {
	sh := s.shardFor(entityID)

	sh.mu.Lock()
	e := s.entryLocked(sh, entityID)
	sh.mu.Unlock()

	if err := s.acquire(e); err != nil {
		return Session{}, fmt.Errorf("update %s: %w", entityID, err)
	}
	defer s.release(e)

	sh.mu.Lock()
	sess := e.sess
	sh.mu.Unlock()

	fn(&sess)
	sess.LastUpdated = s.clock().UTC()

	sh.mu.Lock()
	e.sess = sess
	sh.mu.Unlock()

	return sess, nil
}

// #endregion update

// #region inspection

// Len returns the number of tracked sessions.
func (s *Store) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		n += len(sh.entries)
		sh.mu.Unlock()
	}
	return n
}

// Range calls fn with a snapshot of every session. Snapshots are taken
// per shard; fn must not call back into the store.
func (s *Store) Range(fn func(Session)) {
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.Lock()
		snapshots := make([]Session, 0, len(sh.entries))
		for _, e := range sh.entries {
			snapshots = append(snapshots, e.sess)
		}
		sh.mu.Unlock()
		for _, sess := range snapshots {
			fn(sess)
		}
	}
}

// #endregion inspection

// #region internals

func (s *Store) shardFor(entityID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(entityID))
	return &s.shards[h.Sum32()%shardCount]
}

// entryLocked finds or lazily creates an entry. Caller holds sh.mu.
func (s *Store) entryLocked(sh *shard, entityID string) *entry {
	e, ok := sh.entries[entityID]
	if !ok {
		e = &entry{
			lock: make(chan struct{}, 1),
			sess: Session{
				EntityID: entityID,
				State:    0.5,
				Phase:    phase.First(),
			},
		}
		sh.entries[entityID] = e
	}
	return e
}

func (s *Store) acquire(e *entry) error {
	select {
	case e.lock <- struct{}{}:
		return nil
	default:
	}
	timer := time.NewTimer(s.lockWait)
	defer timer.Stop()
	select {
	case e.lock <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrContention
	}
}

func (s *Store) release(e *entry) {
	<-e.lock
}

// #endregion internals
