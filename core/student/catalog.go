package student

import (
	"context"
	"strconv"

	"github.com/trezcool/campus/core/catalog"
)

const CatalogName = "students"

// NewCatalog describes the student list: filtered by year, with the catalog wide average GPA.
func NewCatalog() *catalog.Catalog[Student] {
	return &catalog.Catalog[Student]{
		Name:         CatalogName,
		Title:        "Student Information System",
		EmptyMessage: "No students found matching your filters.",
		Dimensions: []catalog.Dimension[Student]{
			catalog.Categorical[Student]{Key: "year", Caption: "Filter by Year", Field: func(s Student) string { return s.Year }},
		},
		Averages: []catalog.Average[Student]{
			{Key: "gpa", Caption: "Average GPA", Field: func(s Student) float64 { return s.GPA }},
		},
		Presenter: presenter{},
	}
}

// NewCatalogSource returns a live source: every refresh reloads the students from svc.
func NewCatalogSource(svc Service) catalog.Source {
	load := func(ctx context.Context) ([]Student, error) {
		return svc.QueryAll(ctx)
	}
	return catalog.NewSource(NewCatalog(), load, true)
}

type presenter struct{}

func (presenter) Title(s Student) string { return s.Name }

func (presenter) Fields(s Student) []catalog.Field {
	return []catalog.Field{
		{Label: "Age", Value: strconv.Itoa(s.Age) + " years"},
		{Label: "Email", Value: s.Email},
		{Label: "GPA", Value: strconv.FormatFloat(s.GPA, 'f', -1, 64)},
		{Label: "Major", Value: s.Major},
		{Label: "Year", Value: s.Year},
	}
}

func (presenter) Details(s Student) []catalog.Section {
	return []catalog.Section{{Title: "Skills & Technologies", Items: s.Skills}}
}
