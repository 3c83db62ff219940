package catalog

import (
	"maps"
	"slices"

	"github.com/pkg/errors"

	"github.com/trezcool/campus/core"
)

// Store owns a record collection and the criteria currently applied to it.
// The collection is replaced as a whole and never mutated in place.
// Store is not safe for concurrent use; see Session.
type Store[R Record] struct {
	dims     []Dimension[R]
	records  []R
	criteria Criteria
	version  int

	memoKey     string
	memoVersion int
	memo        []R

	subscribers []func()
}

// NewStore returns an empty store filtering on dims, with default criteria.
func NewStore[R Record](dims ...Dimension[R]) *Store[R] {
	s := &Store[R]{
		dims:     dims,
		criteria: make(Criteria, len(dims)),
	}
	for _, dim := range dims {
		s.criteria[dim.Name()] = dim.Default()
	}
	return s
}

// Initialize loads records, replacing the current collection. Criteria are kept.
// Nothing is loaded when a record has a missing or duplicate id.
func (s *Store[R]) Initialize(records []R) error {
	if err := checkIDs(records); err != nil {
		return err
	}
	s.records = append([]R(nil), records...)
	s.version++
	s.notify()
	return nil
}

// SetCriterion replaces the value of one dimension.
func (s *Store[R]) SetCriterion(dimension, value string) error {
	return s.SetCriteria(Criteria{dimension: value})
}

// SetCriteria replaces the value of every dimension named in c, or of none of them:
// all values are parsed before any is applied. Dimensions are checked in name order
// so the reported error does not depend on map iteration.
func (s *Store[R]) SetCriteria(c Criteria) error {
	parsed, err := s.parseAll(c)
	if err != nil || len(parsed) == 0 {
		return err
	}
	maps.Copy(s.criteria, parsed)
	s.notify()
	return nil
}

// ReplaceCriteria restores the defaults, then applies c; nothing changes when c is rejected.
func (s *Store[R]) ReplaceCriteria(c Criteria) error {
	parsed, err := s.parseAll(c)
	if err != nil {
		return err
	}
	for _, dim := range s.dims {
		s.criteria[dim.Name()] = dim.Default()
	}
	maps.Copy(s.criteria, parsed)
	s.notify()
	return nil
}

func (s *Store[R]) parseAll(c Criteria) (Criteria, error) {
	parsed := make(Criteria, len(c))
	for _, dimension := range slices.Sorted(maps.Keys(c)) {
		val, err := s.parse(dimension, c[dimension])
		if err != nil {
			return nil, err
		}
		parsed[dimension] = val
	}
	return parsed, nil
}

func (s *Store[R]) parse(dimension, value string) (string, error) {
	dim, ok := s.Dimension(dimension)
	if !ok {
		return "", core.NewArgumentError("unknown dimension " + dimension)
	}
	val, err := dim.Parse(value)
	if err != nil {
		return "", errors.Wrap(err, "parsing criterion")
	}
	return val, nil
}

// Reset restores the default criteria.
func (s *Store[R]) Reset() {
	_ = s.ReplaceCriteria(nil)
}

// Subscribe registers fn to be called after every change of collection or criteria.
func (s *Store[R]) Subscribe(fn func()) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store[R]) notify() {
	for _, fn := range s.subscribers {
		fn()
	}
}

func (s *Store[R]) Dimension(name string) (Dimension[R], bool) {
	for _, dim := range s.dims {
		if dim.Name() == name {
			return dim, true
		}
	}
	return nil, false
}

func (s *Store[R]) Dimensions() []Dimension[R] {
	return s.dims
}

func (s *Store[R]) Criteria() Criteria {
	return s.criteria.clone()
}

// Records returns the full collection. Callers must not modify it.
func (s *Store[R]) Records() []R {
	return s.records
}

// Visible returns the records matching the current criteria. Callers must not modify it.
func (s *Store[R]) Visible() []R {
	key := s.criteria.key()
	if s.memo == nil || s.memoKey != key || s.memoVersion != s.version {
		s.memo = Apply(s.records, s.dims, s.criteria)
		s.memoKey = key
		s.memoVersion = s.version
	}
	return s.memo
}
