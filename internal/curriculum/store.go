package curriculum

import (
	"sync"

	"github.com/hrishi7/lingocare-studio/internal/identity"
)

// Store owns the live tree. All mutation funnels through Dispatch, which
// applies intents sequentially and notifies subscribers after each one that
// changed the tree. Subscribers receive the new root; they must treat it as
// read-only.
type Store struct {
	mu      sync.Mutex
	current *Curriculum
	ids     identity.Generator
	subs    map[int]func(*Curriculum)
	nextSub int
}

func NewStore(ids identity.Generator) *Store {
	return &Store{
		current: New(ids.NewID()),
		ids:     ids,
		subs:    make(map[int]func(*Curriculum)),
	}
}

// Dispatch applies one intent and returns the resulting root. No-op intents
// return the unchanged tree and skip notification.
func (s *Store) Dispatch(in Intent) *Curriculum {
	s.mu.Lock()
	next := Apply(s.current, in, s.ids)
	changed := next != s.current
	s.current = next

	var fns []func(*Curriculum)
	if changed {
		fns = make([]func(*Curriculum), 0, len(s.subs))
		for _, fn := range s.subs {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	// Notify outside the lock so a subscriber may dispatch follow-up intents.
	for _, fn := range fns {
		fn(next)
	}
	return next
}

func (s *Store) Current() *Curriculum {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Subscribe registers an observer and returns its unsubscribe function.
func (s *Store) Subscribe(fn func(*Curriculum)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
