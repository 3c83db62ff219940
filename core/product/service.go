package product

import "errors"

var ErrNotFound = errors.New("product not found")

type (
	Repository interface {
		CreateProduct(p Product) (Product, error)
		QueryAllProducts() ([]Product, error)
		GetProductByID(id int) (Product, error)
		UpdateProduct(p Product) (Product, error)
		DeleteProduct(id int) error
	}

	Service interface {
		Create(np NewProduct) (Product, error)
		QueryAll() ([]Product, error)
		GetByID(id int) (Product, error)
		Update(id int, np NewProduct) (Product, error)
		Delete(id int) error
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(np NewProduct) (Product, error) {
	return svc.repo.CreateProduct(Product{Name: np.Name, Price: np.Price})
}

func (svc *service) QueryAll() ([]Product, error) {
	return svc.repo.QueryAllProducts()
}

func (svc *service) GetByID(id int) (Product, error) {
	return svc.repo.GetProductByID(id)
}

// Update only changes the name and price of the product.
func (svc *service) Update(id int, np NewProduct) (Product, error) {
	p, err := svc.repo.GetProductByID(id)
	if err != nil {
		return Product{}, err
	}
	p.Name = np.Name
	p.Price = np.Price
	return svc.repo.UpdateProduct(p)
}

func (svc *service) Delete(id int) error {
	return svc.repo.DeleteProduct(id)
}
