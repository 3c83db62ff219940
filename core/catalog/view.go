package catalog

type (
	Field struct {
		Label string `json:"label"`
		Value string `json:"value"`
	}

	// Section is a titled, ordered list of detail lines shown when an item is expanded.
	Section struct {
		Title string   `json:"title"`
		Items []string `json:"items"`
	}

	// Presenter knows how to display one record shape.
	Presenter[R any] interface {
		Title(rec R) string
		Fields(rec R) []Field
		Details(rec R) []Section
	}

	Item struct {
		ID       int       `json:"id"`
		Title    string    `json:"title"`
		Fields   []Field   `json:"fields"`
		Expanded bool      `json:"expanded"`
		Details  []Section `json:"details,omitempty"`
	}

	Filter struct {
		Name     string   `json:"name"`
		Label    string   `json:"label"`
		Kind     Kind     `json:"kind"`
		Selected string   `json:"selected"`
		Options  []string `json:"options,omitempty"`
	}

	View struct {
		Catalog      string   `json:"catalog"`
		Title        string   `json:"title"`
		Filters      []Filter `json:"filters"`
		Items        []Item   `json:"items"`
		Empty        bool     `json:"empty"`
		EmptyMessage string   `json:"empty_message,omitempty"`
		Summary      Summary  `json:"summary"`
	}
)

// Project renders visible records, in order, as items. Details are only attached to expanded items.
func Project[R Record](visible []R, exp *Expansion, p Presenter[R]) []Item {
	items := make([]Item, 0, len(visible))
	for _, rec := range visible {
		item := Item{
			ID:       rec.RecordID(),
			Title:    p.Title(rec),
			Fields:   p.Fields(rec),
			Expanded: exp.IsExpanded(rec.RecordID()),
		}
		if item.Expanded {
			item.Details = p.Details(rec)
		}
		items = append(items, item)
	}
	return items
}
