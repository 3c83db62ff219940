package catalog

import "strconv"

type book struct {
	ID       int
	Title    string
	Genre    string
	Price    float64
	Chapters []string
}

func (b book) RecordID() int { return b.ID }

var (
	genreDim = Categorical[book]{Key: "genre", Caption: "Genre", Field: func(b book) string { return b.Genre }}
	priceDim = Range[book]{Key: "maxPrice", Caption: "Max Price", Field: func(b book) float64 { return b.Price }, Max: 100}
)

type bookPresenter struct{}

func (bookPresenter) Title(b book) string { return b.Title }

func (bookPresenter) Fields(b book) []Field {
	return []Field{{Label: "Genre", Value: b.Genre}, {Label: "Price", Value: strconv.FormatFloat(b.Price, 'f', 2, 64)}}
}

func (bookPresenter) Details(b book) []Section {
	return []Section{{Title: "Chapters", Items: b.Chapters}}
}

func newBookCatalog() *Catalog[book] {
	return &Catalog[book]{
		Name:         "books",
		Title:        "Books",
		EmptyMessage: "No books found.",
		Dimensions:   []Dimension[book]{genreDim, priceDim},
		Averages:     []Average[book]{{Key: "price", Caption: "Average Price", Field: func(b book) float64 { return b.Price }}},
		Counts:       []Count[book]{{Key: "cheap", Caption: "Cheap", Match: func(b book) bool { return b.Price < 20 }}},
		Presenter:    bookPresenter{},
	}
}

func testBooks() []book {
	return []book{
		{ID: 1, Title: "Dune", Genre: "SciFi", Price: 19.5, Chapters: []string{"Book I", "Book II", "Book III"}},
		{ID: 2, Title: "Emma", Genre: "Classic", Price: 9},
		{ID: 3, Title: "Neuromancer", Genre: "SciFi", Price: 25, Chapters: []string{"Chiba City Blues", "The Shopping Expedition", "Chiba City Blues"}},
		{ID: 4, Title: "Persuasion", Genre: "Classic", Price: 12.25},
		{ID: 5, Title: "It", Genre: "Horror", Price: 100},
	}
}

func ids(books []book) []int {
	res := make([]int, 0, len(books))
	for _, b := range books {
		res = append(res, b.ID)
	}
	return res
}
