package catalog

import "strconv"

// DisplayPrecision is the number of decimal places averages are presented with.
const DisplayPrecision = 2

// Average declares the mean of a numeric field as a summary statistic.
type Average[R any] struct {
	Key     string
	Caption string
	Field   func(R) float64
}

// Count declares the number of records satisfying Match as a summary statistic.
type Count[R any] struct {
	Key     string
	Caption string
	Match   func(R) bool
}

// Stat is a computed mean. Valid is false when the collection was empty.
type Stat struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Display formats the mean with DisplayPrecision decimals, or "n/a" when undefined.
func (s Stat) Display() string {
	if !s.Valid {
		return "n/a"
	}
	return strconv.FormatFloat(s.Value, 'f', DisplayPrecision, 64)
}

type Tally struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

type Summary struct {
	TotalCount   int     `json:"total_count"`
	VisibleCount int     `json:"visible_count"`
	Averages     []Stat  `json:"averages"`
	Counts       []Tally `json:"counts"`
}

// Average looks up a computed mean by key.
func (s Summary) Average(key string) (Stat, bool) {
	for _, st := range s.Averages {
		if st.Key == key {
			return st, true
		}
	}
	return Stat{}, false
}

// Mean returns the full precision mean of field over records; ok is false for an empty collection.
func Mean[R any](records []R, field func(R) float64) (mean float64, ok bool) {
	if len(records) == 0 {
		return 0, false
	}
	var sum float64
	for _, rec := range records {
		sum += field(rec)
	}
	return sum / float64(len(records)), true
}

// Summarize counts both collections and computes averages and counts over full only:
// the statistics stay catalog wide whatever the current filter.
func Summarize[R any](full, visible []R, avgs []Average[R], counts []Count[R]) Summary {
	sum := Summary{
		TotalCount:   len(full),
		VisibleCount: len(visible),
		Averages:     make([]Stat, 0, len(avgs)),
		Counts:       make([]Tally, 0, len(counts)),
	}
	for _, avg := range avgs {
		mean, ok := Mean(full, avg.Field)
		sum.Averages = append(sum.Averages, Stat{Key: avg.Key, Label: avg.Caption, Value: mean, Valid: ok})
	}
	for _, cnt := range counts {
		var n int
		for _, rec := range full {
			if cnt.Match(rec) {
				n++
			}
		}
		sum.Counts = append(sum.Counts, Tally{Key: cnt.Key, Label: cnt.Caption, Value: n})
	}
	return sum
}
