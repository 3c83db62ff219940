package inmemdb

import (
	"sync"

	"github.com/trezcool/campus/core/product"
	"github.com/trezcool/campus/core/student"
)

type (
	DB struct {
		student *studentTable
		product *productTable
	}

	studentTable struct {
		sync.RWMutex
		pkCount int
		table   map[int]*student.Student
	}

	// productTable keeps insertion order: the API lists products the way they were added.
	productTable struct {
		sync.RWMutex
		rows []product.Product
	}
)

func Open() *DB {
	return &DB{
		student: &studentTable{table: make(map[int]*student.Student)},
		product: &productTable{},
	}
}
