package inmemdb

import (
	"github.com/trezcool/campus/core/product"
)

type productRepository struct {
	db *productTable
}

var _ product.Repository = (*productRepository)(nil) // interface compliance check

// NewProductRepository returns a repository holding a copy of seed.
func NewProductRepository(db *DB, seed ...product.Product) product.Repository {
	repo := &productRepository{db: db.product}
	repo.db.Lock()
	repo.db.rows = append(repo.db.rows, seed...)
	repo.db.Unlock()
	return repo
}

func (repo *productRepository) indexOf(id int) int {
	for i, p := range repo.db.rows {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// CreateProduct assigns the highest existing id + 1.
func (repo *productRepository) CreateProduct(p product.Product) (product.Product, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	var maxID int
	for _, row := range repo.db.rows {
		if row.ID > maxID {
			maxID = row.ID
		}
	}
	p.ID = maxID + 1
	repo.db.rows = append(repo.db.rows, p)
	return p, nil
}

func (repo *productRepository) QueryAllProducts() ([]product.Product, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return append(make([]product.Product, 0, len(repo.db.rows)), repo.db.rows...), nil
}

func (repo *productRepository) GetProductByID(id int) (product.Product, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i := repo.indexOf(id); i >= 0 {
		return repo.db.rows[i], nil
	}
	return product.Product{}, product.ErrNotFound
}

func (repo *productRepository) UpdateProduct(p product.Product) (product.Product, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.indexOf(p.ID)
	if i < 0 {
		return product.Product{}, product.ErrNotFound
	}
	repo.db.rows[i] = p
	return p, nil
}

func (repo *productRepository) DeleteProduct(id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i := repo.indexOf(id)
	if i < 0 {
		return product.ErrNotFound
	}
	repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
	return nil
}
