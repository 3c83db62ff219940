package catalog

import "sort"

// Expansion holds the disclosure flag of each record, keyed by record id.
// Ids never toggled are collapsed.
type Expansion struct {
	flags map[int]bool
}

// NewExpansion returns a registry with ids eagerly registered as collapsed.
func NewExpansion(ids ...int) *Expansion {
	e := &Expansion{flags: make(map[int]bool, len(ids))}
	for _, id := range ids {
		e.flags[id] = false
	}
	return e
}

// Toggle flips the flag of id and returns its new value.
func (e *Expansion) Toggle(id int) bool {
	if e.flags == nil {
		e.flags = make(map[int]bool)
	}
	e.flags[id] = !e.flags[id]
	return e.flags[id]
}

func (e *Expansion) Set(id int, expanded bool) {
	if e.flags == nil {
		e.flags = make(map[int]bool)
	}
	e.flags[id] = expanded
}

func (e *Expansion) IsExpanded(id int) bool {
	if e == nil {
		return false
	}
	return e.flags[id]
}

// Expanded lists the expanded ids in ascending order.
func (e *Expansion) Expanded() []int {
	if e == nil {
		return nil
	}
	var ids []int
	for id, expanded := range e.flags {
		if expanded {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}
