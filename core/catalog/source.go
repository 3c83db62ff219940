package catalog

import (
	"context"

	"github.com/pkg/errors"
)

// Browser is the record-independent face of a Session, used by the outer surfaces.
type Browser interface {
	SetCriteria(c Criteria) error
	ReplaceCriteria(c Criteria) error
	Reset()
	Toggle(id int) bool
	View() View
	Subscribe(fn func(View))
}

var _ Browser = (*Session[Record])(nil)

// Loader returns the current collection of a catalog.
type Loader[R Record] func(ctx context.Context) ([]R, error)

// Source opens browsers over one catalog and keeps them in sync with its loader.
type Source interface {
	Name() string
	Open(ctx context.Context) (Browser, error)
	// Refresh reloads the collection of b when the source is live. Criteria and expansion flags survive.
	Refresh(ctx context.Context, b Browser) error
}

type source[R Record] struct {
	cat  *Catalog[R]
	load Loader[R]
	live bool
}

// NewSource returns a Source over cat. A live source reloads its records on every Refresh,
// otherwise records are loaded once per Open.
func NewSource[R Record](cat *Catalog[R], load Loader[R], live bool) Source {
	return &source[R]{cat: cat, load: load, live: live}
}

func (src *source[R]) Name() string { return src.cat.Name }

func (src *source[R]) Open(ctx context.Context) (Browser, error) {
	records, err := src.load(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", src.cat.Name)
	}
	s, err := NewSession(src.cat, records)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (src *source[R]) Refresh(ctx context.Context, b Browser) error {
	if !src.live {
		return nil
	}
	s, ok := b.(*Session[R])
	if !ok {
		return errors.Errorf("%s: foreign browser %T", src.cat.Name, b)
	}
	records, err := src.load(ctx)
	if err != nil {
		return errors.Wrapf(err, "loading %s", src.cat.Name)
	}
	return s.Initialize(records)
}
