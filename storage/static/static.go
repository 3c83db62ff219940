// Package static loads the datasets shipped with the application.
package static

import (
	"io/fs"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/campus/core/product"
	"github.com/trezcool/campus/core/student"
)

const (
	StudentsPath = "data/students.yaml"
	ProductsPath = "data/products.yaml"
	ShopPath     = "data/shop.yaml"
)

// LoadStudents reads the student list of the student information lab.
func LoadStudents(fsys fs.FS) ([]student.Student, error) {
	return load[student.Student](fsys, StudentsPath)
}

// LoadProducts reads the product catalog.
func LoadProducts(fsys fs.FS) ([]product.Product, error) {
	return load[product.Product](fsys, ProductsPath)
}

// LoadShop reads the initial inventory of the products API.
func LoadShop(fsys fs.FS) ([]product.Product, error) {
	return load[product.Product](fsys, ShopPath)
}

func load[T any](fsys fs.FS, path string) ([]T, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer func() { _ = f.Close() }()

	var records []T
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&records); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}
	return records, nil
}
