package student

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/campus/core"
)

// AdultAge is the age students must be older than to be listed as adults.
const AdultAge = 18

// Years
const (
	YearFreshman  = "Freshman"
	YearSophomore = "Sophomore"
	YearJunior    = "Junior"
	YearSenior    = "Senior"
)

var (
	Years = []string{YearFreshman, YearSophomore, YearJunior, YearSenior}

	// OrderableFields are the fields students can be ordered by.
	OrderableFields = map[string]bool{"id": true, "name": true, "age": true, "gpa": true, "year": true}
)

type Student struct {
	ID     int      `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Age    int      `json:"age" yaml:"age"`
	Email  string   `json:"email" yaml:"email"`
	GPA    float64  `json:"gpa" yaml:"gpa"`
	Major  string   `json:"major" yaml:"major"`
	Year   string   `json:"year" yaml:"year"`
	Skills []string `json:"skills" yaml:"skills"`
}

func (s Student) RecordID() int { return s.ID }

func (s Student) IsAdult() bool { return s.Age > AdultAge }

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name   string   `json:"name" validate:"required,notblank"`
	Age    int      `json:"age" validate:"required,min=1,max=150"`
	Email  string   `json:"email" validate:"omitempty,email"`
	GPA    float64  `json:"gpa" validate:"min=0,max=4"`
	Major  string   `json:"major"`
	Year   string   `json:"year" validate:"omitempty,student_year"`
	Skills []string `json:"skills" validate:"dive,notblank"`
}

func (ns *NewStudent) clean() {
	ns.Name = core.CleanString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Major = core.CleanString(ns.Major)
	ns.Year = core.CleanString(ns.Year)
	for i, skill := range ns.Skills {
		ns.Skills[i] = core.CleanString(skill)
	}
}

func (ns *NewStudent) Validate(ctx context.Context, validate *validator.Validate, svc Service) error {
	ns.clean()
	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, ns.Email)
}

// UpdateStudent replaces every editable field of an existing Student.
type UpdateStudent NewStudent

func (us *UpdateStudent) Validate(ctx context.Context, origStd Student, validate *validator.Validate, svc Service) error {
	ns := (*NewStudent)(us)
	ns.clean()
	if err := validate.Struct(ns); err != nil {
		return err
	}
	return svc.CheckUniqueness(ctx, ns.Email, origStd)
}

type QueryFilter struct {
	OlderThan int    `query:"older_than"`
	Year      string `query:"year"`
}

func (qf *QueryFilter) Clean() {
	qf.Year = core.CleanString(qf.Year)
}

// CleanOrderings drops orderings on fields students cannot be ordered by.
func CleanOrderings(orderings []core.DBOrdering) []core.DBOrdering {
	var cleaned []core.DBOrdering
	for _, ord := range orderings {
		if OrderableFields[ord.Field] {
			cleaned = append(cleaned, ord)
		}
	}
	return cleaned
}
