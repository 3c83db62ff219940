package product

import (
	"context"
	"strconv"
	"strings"

	"github.com/trezcool/campus/core/catalog"
)

const (
	CatalogName = "products"

	// DefaultMaxPrice is the upper bound of the price slider.
	DefaultMaxPrice = 500
)

// NewCatalog describes the product catalog: filtered by category and maximum price,
// with the catalog wide average rating and number of products in stock.
func NewCatalog(maxPrice float64) *catalog.Catalog[Product] {
	if maxPrice <= 0 {
		maxPrice = DefaultMaxPrice
	}
	return &catalog.Catalog[Product]{
		Name:         CatalogName,
		Title:        "Product Catalog",
		EmptyMessage: "No products found matching your filters.",
		Dimensions: []catalog.Dimension[Product]{
			catalog.Categorical[Product]{Key: "category", Caption: "Category", Field: func(p Product) string { return p.Category }},
			catalog.Range[Product]{Key: "maxPrice", Caption: "Max Price", Field: func(p Product) float64 { return p.Price }, Max: maxPrice},
		},
		Averages: []catalog.Average[Product]{
			{Key: "rating", Caption: "Average Rating", Field: func(p Product) float64 { return p.Rating }},
		},
		Counts: []catalog.Count[Product]{
			{Key: "inStock", Caption: "In Stock", Match: Product.InStock},
		},
		Presenter: presenter{},
	}
}

// NewCatalogSource returns a static source over products.
func NewCatalogSource(products []Product, maxPrice float64) catalog.Source {
	load := func(context.Context) ([]Product, error) {
		return products, nil
	}
	return catalog.NewSource(NewCatalog(maxPrice), load, false)
}

type presenter struct{}

func (presenter) Title(p Product) string {
	if p.Image == "" {
		return p.Name
	}
	return p.Image + " " + p.Name
}

func (presenter) Fields(p Product) []catalog.Field {
	return []catalog.Field{
		{Label: "Category", Value: p.Category},
		{Label: "Rating", Value: Stars(p.Rating) + " (" + formatNumber(p.Rating) + ")"},
		{Label: "Description", Value: p.Description},
		{Label: "Price", Value: "$" + strconv.FormatFloat(p.Price, 'f', 2, 64)},
		{Label: "Stock", Value: stockStatus(p)},
	}
}

func (presenter) Details(p Product) []catalog.Section {
	reviews := make([]string, 0, len(p.Reviews))
	for _, r := range p.Reviews {
		reviews = append(reviews, r.Author+" "+Stars(r.Rating)+" "+formatNumber(r.Rating)+": "+r.Comment)
	}
	return []catalog.Section{
		{Title: "Specifications", Items: []string{p.Specifications}},
		{Title: "Customer Reviews", Items: reviews},
	}
}

// Stars renders one star per whole rating point.
func Stars(rating float64) string {
	if rating < 1 {
		return ""
	}
	return strings.Repeat("★", int(rating))
}

func stockStatus(p Product) string {
	if p.InStock() {
		return strconv.Itoa(p.Stock) + " units"
	}
	return "Out of Stock"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
