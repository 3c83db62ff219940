package catalog

// Catalog describes how one record shape is filtered, summarised and presented.
type Catalog[R Record] struct {
	Name         string
	Title        string
	EmptyMessage string
	Dimensions   []Dimension[R]
	Averages     []Average[R]
	Counts       []Count[R]
	Presenter    Presenter[R]
}

// NewStore returns an empty store filtering on the catalog's dimensions.
func (c *Catalog[R]) NewStore() *Store[R] {
	return NewStore(c.Dimensions...)
}

// Options returns the filter options of a categorical dimension. ok is false for other dimensions.
func (c *Catalog[R]) Options(records []R, dimension string) (options []string, ok bool) {
	for _, dim := range c.Dimensions {
		if cat, isCat := dim.(Categorical[R]); isCat && dim.Name() == dimension {
			return ComputeOptions(records, cat), true
		}
	}
	return nil, false
}

// Render derives the complete view of the store: filters, visible items, empty state and summary.
func (c *Catalog[R]) Render(store *Store[R], exp *Expansion) View {
	full := store.Records()
	visible := store.Visible()
	criteria := store.Criteria()

	view := View{
		Catalog: c.Name,
		Title:   c.Title,
		Filters: make([]Filter, 0, len(c.Dimensions)),
		Items:   Project(visible, exp, c.Presenter),
		Summary: Summarize(full, visible, c.Averages, c.Counts),
	}
	for _, dim := range c.Dimensions {
		f := Filter{
			Name:     dim.Name(),
			Label:    dim.Label(),
			Kind:     dim.Kind(),
			Selected: criteria[dim.Name()],
		}
		f.Options, _ = c.Options(full, dim.Name())
		view.Filters = append(view.Filters, f)
	}
	if len(visible) == 0 {
		view.Empty = true
		view.EmptyMessage = c.EmptyMessage
	}
	return view
}
