package document

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"
)

// ErrPoisoned is raised once a panic has unwound through the store's
// critical section. The contents can no longer be trusted.
var ErrPoisoned = fmt.Errorf("document store poisoned")

// Reader gives read access to the latest text of open documents.
type Reader interface {
	Get(uri string) (string, bool)
}

// Store holds the latest full text of every synchronized document URI.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]string
	poisoned atomic.Bool
	log      commonlog.Logger
}

// NewStore creates an empty Store. One Store is created per process,
// before the dispatch loop starts.
func NewStore() *Store {
	return &Store{
		docs: make(map[string]string),
		log:  commonlog.GetLogger("hxls.document"),
	}
}

// Upsert replaces the text stored for a URI.
func (s *Store) Upsert(uri string, text string) {
	s.write(func() {
		s.docs[uri] = text
	})
}

// Get returns the current text for a URI.
func (s *Store) Get(uri string) (string, bool) {
	var (
		text string
		ok   bool
	)
	s.read(func() {
		text, ok = s.docs[uri]
	})
	return text, ok
}

// Delete forgets a URI. Deleting an unknown URI is a no-op.
func (s *Store) Delete(uri string) {
	s.write(func() {
		delete(s.docs, uri)
	})
}

// Len returns the number of tracked documents.
func (s *Store) Len() int {
	var n int
	s.read(func() {
		n = len(s.docs)
	})
	return n
}

func (s *Store) write(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.critical(fn)
}

func (s *Store) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.critical(fn)
}

// critical runs fn while the lock is held. A panic inside fn poisons the
// store before it keeps unwinding.
func (s *Store) critical(fn func()) {
	if s.poisoned.Load() {
		s.log.Critical("refusing access to poisoned document store")
		panic(ErrPoisoned)
	}
	defer func() {
		if r := recover(); r != nil {
			s.poisoned.Store(true)
			panic(fmt.Errorf("%w: %v", ErrPoisoned, r))
		}
	}()
	fn()
}
