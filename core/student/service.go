package student

import (
	"context"
	"errors"

	"github.com/trezcool/campus/core"
)

var (
	// errors
	ErrNotFound    = errors.New("student not found")
	ErrEmailExists = errors.New("a student with this email already exists")
)

type (
	Repository interface {
		CheckEmailUniqueness(ctx context.Context, email string, excludedIDs ...int) error
		CreateStudent(ctx context.Context, std Student) (Student, error)
		// QueryStudents applies AND operation on the set QueryFilter fields.
		QueryStudents(ctx context.Context, filter QueryFilter, orderings ...core.DBOrdering) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...int) error
		CountStudents(ctx context.Context) (int, error)
	}

	Service interface {
		CheckUniqueness(ctx context.Context, email string, exclStds ...Student) error
		Create(ctx context.Context, ns NewStudent) (Student, error)
		QueryAll(ctx context.Context, orderings ...core.DBOrdering) ([]Student, error)
		QueryAdults(ctx context.Context, orderings ...core.DBOrdering) ([]Student, error)
		Filter(ctx context.Context, filter QueryFilter, orderings ...core.DBOrdering) ([]Student, error)
		GetByID(ctx context.Context, id int) (Student, error)
		Update(ctx context.Context, id int, us UpdateStudent) (Student, error)
		Delete(ctx context.Context, ids ...int) error
		// Seed creates stds when no student exists yet and returns how many were created.
		Seed(ctx context.Context, stds []Student) (int, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) CheckUniqueness(ctx context.Context, email string, exclStds ...Student) error {
	if email == "" {
		return nil
	}
	exclIDs := make([]int, 0, len(exclStds))
	for _, std := range exclStds {
		exclIDs = append(exclIDs, std.ID)
	}
	if err := svc.repo.CheckEmailUniqueness(ctx, email, exclIDs...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	std := Student{
		Name:   ns.Name,
		Age:    ns.Age,
		Email:  ns.Email,
		GPA:    ns.GPA,
		Major:  ns.Major,
		Year:   ns.Year,
		Skills: ns.Skills,
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *service) QueryAll(ctx context.Context, orderings ...core.DBOrdering) ([]Student, error) {
	return svc.Filter(ctx, QueryFilter{}, orderings...)
}

func (svc *service) QueryAdults(ctx context.Context, orderings ...core.DBOrdering) ([]Student, error) {
	return svc.Filter(ctx, QueryFilter{OlderThan: AdultAge}, orderings...)
}

func (svc *service) Filter(ctx context.Context, filter QueryFilter, orderings ...core.DBOrdering) ([]Student, error) {
	filter.Clean()
	return svc.repo.QueryStudents(ctx, filter, CleanOrderings(orderings)...)
}

func (svc *service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	std := Student{
		ID:     id,
		Name:   us.Name,
		Age:    us.Age,
		Email:  us.Email,
		GPA:    us.GPA,
		Major:  us.Major,
		Year:   us.Year,
		Skills: us.Skills,
	}
	return svc.repo.UpdateStudent(ctx, std)
}

func (svc *service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}

func (svc *service) Seed(ctx context.Context, stds []Student) (int, error) {
	n, err := svc.repo.CountStudents(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	for i, std := range stds {
		std.ID = 0 // let the repository assign ids
		if _, err := svc.repo.CreateStudent(ctx, std); err != nil {
			return i, err
		}
	}
	return len(stds), nil
}
