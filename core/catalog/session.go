package catalog

import (
	"slices"
	"sync"
)

// Session is one viewer's state over a catalog: its store and its expansion registry.
// Session is safe for concurrent use.
//
// Subscribers receive the view rendered under the same lock as the change it reflects,
// one call per change, in the order the changes were made. They are called without the
// state lock held, so they may read the session, but must not change it.
type Session[R Record] struct {
	mu        sync.Mutex
	catalog   *Catalog[R]
	store     *Store[R]
	expansion *Expansion

	subscribers []func(View)
	nextTicket  uint64 // guarded by mu

	publishMu sync.Mutex
	published *sync.Cond
	serving   uint64 // guarded by publishMu
}

// NewSession loads records into a fresh store of cat.
func NewSession[R Record](cat *Catalog[R], records []R) (*Session[R], error) {
	s := &Session[R]{
		catalog:   cat,
		store:     cat.NewStore(),
		expansion: NewExpansion(),
	}
	s.published = sync.NewCond(&s.publishMu)
	if err := s.store.Initialize(records); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session[R]) Catalog() *Catalog[R] { return s.catalog }

// Initialize replaces the collection. Criteria and expansion flags survive.
func (s *Session[R]) Initialize(records []R) error {
	return s.change(func() error { return s.store.Initialize(records) })
}

func (s *Session[R]) SetCriterion(dimension, value string) error {
	return s.change(func() error { return s.store.SetCriterion(dimension, value) })
}

// SetCriteria applies every criterion of c, or none of them when one is invalid.
func (s *Session[R]) SetCriteria(c Criteria) error {
	return s.change(func() error { return s.store.SetCriteria(c) })
}

// ReplaceCriteria restores the defaults and applies c, or changes nothing when c is invalid.
func (s *Session[R]) ReplaceCriteria(c Criteria) error {
	return s.change(func() error { return s.store.ReplaceCriteria(c) })
}

func (s *Session[R]) Reset() {
	_ = s.change(func() error {
		s.store.Reset()
		return nil
	})
}

// Toggle flips the expansion of id and returns its new state.
func (s *Session[R]) Toggle(id int) bool {
	var expanded bool
	_ = s.change(func() error {
		expanded = s.expansion.Toggle(id)
		return nil
	})
	return expanded
}

func (s *Session[R]) IsExpanded(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expansion.IsExpanded(id)
}

func (s *Session[R]) Criteria() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Criteria()
}

func (s *Session[R]) Visible() []R {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.store.Visible())
}

func (s *Session[R]) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Render(s.store, s.expansion)
}

// Subscribe registers fn to receive the recomputed view after every change.
func (s *Session[R]) Subscribe(fn func(View)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// change runs apply under the lock and, when it succeeds, publishes the resulting view.
// Failed changes are not published.
func (s *Session[R]) change(apply func() error) error {
	s.mu.Lock()
	if err := apply(); err != nil {
		s.mu.Unlock()
		return err
	}
	if len(s.subscribers) == 0 {
		s.mu.Unlock()
		return nil
	}
	subs := slices.Clone(s.subscribers)
	view := s.catalog.Render(s.store, s.expansion)
	ticket := s.nextTicket
	s.nextTicket++
	s.mu.Unlock()

	s.publish(ticket, subs, view)
	return nil
}

// publish delivers view once every change with an earlier ticket has been delivered.
func (s *Session[R]) publish(ticket uint64, subs []func(View), view View) {
	s.publishMu.Lock()
	for s.serving != ticket {
		s.published.Wait()
	}
	s.publishMu.Unlock()

	for _, fn := range subs {
		fn(view)
	}

	s.publishMu.Lock()
	s.serving++
	s.published.Broadcast()
	s.publishMu.Unlock()
}
