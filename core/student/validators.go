package student

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/campus/core"
)

var (
	yearTag  = "student_year"
	yearText = "must be one of " + strings.Join(Years, ", ")
)

// InitValidators registers the student validators; core.InitValidators must have been called.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(yearTag, yearValidation)
	core.RegisterCustomTranslation(validate, translator, yearTag, yearText)
}

// yearValidation checks that the year is one of Years.
func yearValidation(fl validator.FieldLevel) bool {
	year := fl.Field().String()
	for _, y := range Years {
		if y == year {
			return true
		}
	}
	return false
}
