package product

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/campus/core"
)

type Review struct {
	Author  string  `json:"author" yaml:"author"`
	Rating  float64 `json:"rating" yaml:"rating"`
	Comment string  `json:"comment" yaml:"comment"`
}

type Product struct {
	ID             int      `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Category       string   `json:"category,omitempty" yaml:"category"`
	Price          float64  `json:"price" yaml:"price"`
	Description    string   `json:"description,omitempty" yaml:"description"`
	Image          string   `json:"image,omitempty" yaml:"image"`
	Specifications string   `json:"specifications,omitempty" yaml:"specifications"`
	Availability   string   `json:"availability,omitempty" yaml:"availability"`
	Stock          int      `json:"stock,omitempty" yaml:"stock"`
	Rating         float64  `json:"rating,omitempty" yaml:"rating"`
	Reviews        []Review `json:"reviews,omitempty" yaml:"reviews"`
}

func (p Product) RecordID() int { return p.ID }

func (p Product) InStock() bool { return p.Stock > 0 }

// NewProduct contains the information needed to create or update a Product.
type NewProduct struct {
	Name  string  `json:"name" validate:"required,notblank"`
	Price float64 `json:"price" validate:"required,min=0.01"`
}

func (np *NewProduct) Validate(validate *validator.Validate) error {
	np.Name = core.CleanString(np.Name)
	return validate.Struct(np)
}
