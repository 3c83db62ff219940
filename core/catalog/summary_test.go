package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	cat := newBookCatalog()
	books := testBooks()

	t.Run("full collection", func(t *testing.T) {
		sum := Summarize(books, books, cat.Averages, cat.Counts)
		assert.Equal(t, 5, sum.TotalCount)
		assert.Equal(t, 5, sum.VisibleCount)

		avg, ok := sum.Average("price")
		assert.True(t, ok)
		assert.True(t, avg.Valid)
		assert.InDelta(t, 33.15, avg.Value, 1e-9)
		assert.Equal(t, "33.15", avg.Display())
		assert.Equal(t, []Tally{{Key: "cheap", Label: "Cheap", Value: 3}}, sum.Counts)
	})

	t.Run("filtering does not change the statistics", func(t *testing.T) {
		visible := Apply(books, cat.Dimensions, Criteria{"genre": "Horror"})
		sum := Summarize(books, visible, cat.Averages, cat.Counts)
		assert.Equal(t, 5, sum.TotalCount)
		assert.Equal(t, 1, sum.VisibleCount)

		avg, _ := sum.Average("price")
		assert.InDelta(t, 33.15, avg.Value, 1e-9)
		assert.Equal(t, 3, sum.Counts[0].Value)
	})

	t.Run("empty collection", func(t *testing.T) {
		sum := Summarize(nil, nil, cat.Averages, cat.Counts)
		assert.Equal(t, 0, sum.TotalCount)
		assert.Equal(t, 0, sum.VisibleCount)

		avg, ok := sum.Average("price")
		assert.True(t, ok)
		assert.False(t, avg.Valid)
		assert.Zero(t, avg.Value)
		assert.Equal(t, "n/a", avg.Display())
		assert.Equal(t, 0, sum.Counts[0].Value)
	})

	t.Run("unknown average", func(t *testing.T) {
		_, ok := Summarize(books, books, cat.Averages, nil).Average("rating")
		assert.False(t, ok)
	})
}

func TestStat_Display(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 3.775, want: "3.77"},
		{value: 4.7775, want: "4.78"},
		{value: 2, want: "2.00"},
		{value: 0.004, want: "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Stat{Value: tt.value, Valid: true}.Display())
		})
	}
}

func TestMean(t *testing.T) {
	price := func(b book) float64 { return b.Price }

	mean, ok := Mean([]book{{Price: 1}, {Price: 2}}, price)
	assert.True(t, ok)
	assert.Equal(t, 1.5, mean)

	_, ok = Mean([]book{}, price)
	assert.False(t, ok)
}
