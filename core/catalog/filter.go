package catalog

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/trezcool/campus/core"
)

// All is the categorical criterion value selecting every record.
const All = "All"

type Kind string

const (
	KindCategorical Kind = "categorical"
	KindRange       Kind = "range"
)

// Criteria maps a dimension name to its selected value.
// Range bounds are kept in their canonical decimal form.
type Criteria map[string]string

func (c Criteria) clone() Criteria {
	cp := make(Criteria, len(c))
	for k, v := range c {
		cp[k] = v
	}
	return cp
}

// key is a stable representation of c, used for memoization.
func (c Criteria) key() string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(c[name])
		b.WriteByte(';')
	}
	return b.String()
}

// Dimension is one filterable axis of a record shape.
type Dimension[R any] interface {
	Name() string
	Label() string
	Kind() Kind
	// Default is the criterion value that puts no restriction on the collection.
	Default() string
	// Parse normalizes a raw criterion value, failing with a core.ArgumentError when it cannot be used.
	Parse(value string) (string, error)
	Match(rec R, value string) bool
}

// Categorical matches records whose field equals the selected value exactly.
type Categorical[R any] struct {
	Key     string
	Caption string
	Field   func(R) string
}

var _ Dimension[Record] = Categorical[Record]{}

func (d Categorical[R]) Name() string  { return d.Key }
func (d Categorical[R]) Label() string { return d.Caption }
func (d Categorical[R]) Kind() Kind    { return KindCategorical }
func (d Categorical[R]) Default() string {
	return All
}

// Parse accepts any value; values absent from the collection simply match nothing.
func (d Categorical[R]) Parse(value string) (string, error) {
	return value, nil
}

func (d Categorical[R]) Match(rec R, value string) bool {
	return value == All || d.Field(rec) == value
}

// Range matches records whose numeric field is lower than or equal to the selected bound.
// A zero Max means the dimension is unbounded by default.
type Range[R any] struct {
	Key     string
	Caption string
	Field   func(R) float64
	Max     float64
}

var _ Dimension[Record] = Range[Record]{}

func (d Range[R]) Name() string  { return d.Key }
func (d Range[R]) Label() string { return d.Caption }
func (d Range[R]) Kind() Kind    { return KindRange }

func (d Range[R]) Default() string {
	if d.Max == 0 {
		return formatBound(math.Inf(1))
	}
	return formatBound(d.Max)
}

func (d Range[R]) Parse(value string) (string, error) {
	bound, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(bound) {
		return "", core.NewArgumentError(d.Key + ": invalid bound " + strconv.Quote(value))
	}
	return formatBound(bound), nil
}

// Match is false for a malformed bound.
func (d Range[R]) Match(rec R, value string) bool {
	bound, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	return d.Field(rec) <= bound
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ComputeOptions returns All followed by the distinct values of dim found in records, in first-seen order.
func ComputeOptions[R any](records []R, dim Categorical[R]) []string {
	seen := make(map[string]struct{}, len(records))
	options := make([]string, 0, len(records)+1)
	options = append(options, All)
	for _, rec := range records {
		val := dim.Field(rec)
		if _, ok := seen[val]; ok {
			continue
		}
		seen[val] = struct{}{}
		options = append(options, val)
	}
	return options
}

// Apply returns, in their original order, the records matching every criterion.
// Dimensions without a criterion are unrestricted; criteria naming no dimension are ignored.
func Apply[R any](records []R, dims []Dimension[R], criteria Criteria) []R {
	visible := make([]R, 0, len(records))
	for _, rec := range records {
		if matchesAll(rec, dims, criteria) {
			visible = append(visible, rec)
		}
	}
	return visible
}

func matchesAll[R any](rec R, dims []Dimension[R], criteria Criteria) bool {
	for _, dim := range dims {
		val, ok := criteria[dim.Name()]
		if !ok {
			continue
		}
		if !dim.Match(rec, val) {
			return false
		}
	}
	return true
}
