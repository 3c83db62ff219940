package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/campus/core"
)

func TestComputeOptions(t *testing.T) {
	tests := []struct {
		name  string
		books []book
		want  []string
	}{
		{name: "empty", books: nil, want: []string{All}},
		{name: "first-seen order without duplicates", books: testBooks(), want: []string{All, "SciFi", "Classic", "Horror"}},
		{name: "case sensitive", books: []book{{ID: 1, Genre: "scifi"}, {ID: 2, Genre: "SciFi"}}, want: []string{All, "scifi", "SciFi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeOptions(tt.books, genreDim))
		})
	}
}

func TestApply(t *testing.T) {
	books := testBooks()
	dims := []Dimension[book]{genreDim, priceDim}

	tests := []struct {
		name     string
		criteria Criteria
		wantIDs  []int
	}{
		{name: "no criteria", criteria: nil, wantIDs: []int{1, 2, 3, 4, 5}},
		{name: "defaults", criteria: Criteria{"genre": All, "maxPrice": priceDim.Default()}, wantIDs: []int{1, 2, 3, 4, 5}},
		{name: "genre", criteria: Criteria{"genre": "SciFi"}, wantIDs: []int{1, 3}},
		{name: "genre is case sensitive", criteria: Criteria{"genre": "scifi"}, wantIDs: []int{}},
		{name: "bound is inclusive", criteria: Criteria{"maxPrice": "19.5"}, wantIDs: []int{1, 2, 4}},
		{name: "AND across dimensions", criteria: Criteria{"genre": "Classic", "maxPrice": "10"}, wantIDs: []int{2}},
		{name: "unknown value", criteria: Criteria{"genre": "Nonexistent"}, wantIDs: []int{}},
		{name: "malformed bound matches nothing", criteria: Criteria{"maxPrice": "lol"}, wantIDs: []int{}},
		{name: "unknown dimension ignored", criteria: Criteria{"author": "Austen"}, wantIDs: []int{1, 2, 3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(books, dims, tt.criteria)
			assert.Equal(t, tt.wantIDs, ids(got))

			// idempotent
			assert.Equal(t, got, Apply(got, dims, tt.criteria))
		})
	}
}

func TestApply_subsequence(t *testing.T) {
	books := testBooks()
	dims := []Dimension[book]{genreDim, priceDim}

	for _, genre := range ComputeOptions(books, genreDim) {
		for _, bound := range []string{"0", "9", "12.25", "50", "100", "+Inf"} {
			got := Apply(books, dims, Criteria{"genre": genre, "maxPrice": bound})

			// every visible record appears in the collection, in the same relative order
			j := 0
			for _, b := range got {
				for j < len(books) && books[j].ID != b.ID {
					j++
				}
				require.Less(t, j, len(books), "genre=%s maxPrice=%s: %d out of order", genre, bound, b.ID)
				j++
			}
		}
	}
}

func TestRange_Parse(t *testing.T) {
	tests := []struct {
		value   string
		want    string
		wantErr bool
	}{
		{value: "100", want: "100"},
		{value: " 99.50 ", want: "99.5"},
		{value: "-1", want: "-1"},
		{value: "", wantErr: true},
		{value: "cheap", wantErr: true},
		{value: "NaN", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := priceDim.Parse(tt.value)
			if tt.wantErr {
				assert.True(t, core.IsArgumentError(err), "Parse() error = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRange_Default(t *testing.T) {
	assert.Equal(t, "100", priceDim.Default())

	unbounded := Range[book]{Key: "maxPrice", Field: func(b book) float64 { return b.Price }}
	assert.Equal(t, "+Inf", unbounded.Default())
	assert.True(t, unbounded.Match(book{Price: 1e12}, unbounded.Default()))
}
